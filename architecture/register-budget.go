package architecture

import (
	"fmt"
)

// RegisterBudget tracks the general purpose register slots still available
// while classifying a single function signature.  Registers are consumed left
// to right; the budget is never shared across signatures.
type RegisterBudget struct {
	size      int
	remaining int
}

func NewRegisterBudget(size int) *RegisterBudget {
	if size < 0 {
		panic(fmt.Sprintf("invalid register budget size (%d)", size))
	}

	return &RegisterBudget{
		size:      size,
		remaining: size,
	}
}

func (budget *RegisterBudget) Size() int {
	return budget.size
}

func (budget *RegisterBudget) Remaining() int {
	budget.check()
	return budget.remaining
}

func (budget *RegisterBudget) IsFull() bool {
	budget.check()
	return budget.remaining == budget.size
}

// Index of the next unused register slot.
func (budget *RegisterBudget) NextSlot() int {
	budget.check()
	return budget.size - budget.remaining
}

// Take consumes numSlots register slots and returns the index of the first
// consumed slot.
func (budget *RegisterBudget) Take(numSlots int) int {
	budget.check()
	if numSlots < 0 || numSlots > budget.remaining {
		panic(fmt.Sprintf(
			"register budget underflow (taking %d of %d remaining)",
			numSlots,
			budget.remaining))
	}

	first := budget.size - budget.remaining
	budget.remaining -= numSlots
	return first
}

// TakeAll drains the remaining budget and returns the number of drained slots.
func (budget *RegisterBudget) TakeAll() int {
	budget.check()
	drained := budget.remaining
	budget.remaining = 0
	return drained
}

func (budget *RegisterBudget) check() {
	if budget.remaining > budget.size {
		panic(fmt.Sprintf(
			"register budget overflow (%d remaining, %d total)",
			budget.remaining,
			budget.size))
	}

	if budget.remaining < 0 {
		panic(fmt.Sprintf(
			"register budget underflow (%d remaining)",
			budget.remaining))
	}
}
