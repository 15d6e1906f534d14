package architecture

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type FeatureSet map[string]struct{}

func NewFeatureSet(features ...string) FeatureSet {
	set := FeatureSet{}
	for _, feature := range features {
		set.Add(feature)
	}
	return set
}

func (set FeatureSet) Add(feature string) {
	set[feature] = struct{}{}
}

func (set FeatureSet) Remove(feature string) {
	delete(set, feature)
}

func (set FeatureSet) Has(feature string) bool {
	_, ok := set[feature]
	return ok
}

func (set FeatureSet) Copy() FeatureSet {
	result := make(FeatureSet, len(set))
	for feature := range set {
		result.Add(feature)
	}
	return result
}

func (set FeatureSet) Sorted() []string {
	return slices.Sorted(maps.Keys(set))
}

// ApplyFeatureDeltas applies a comma separated list of llvm-style feature
// deltas (e.g., "+fp,-bool") on top of a copy of the base feature set.
func ApplyFeatureDeltas(base FeatureSet, deltas string) (FeatureSet, error) {
	result := base.Copy()

	for _, entry := range strings.Split(deltas, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if len(entry) < 2 {
			return nil, fmt.Errorf("invalid feature delta (%s)", entry)
		}

		switch entry[0] {
		case '+':
			result.Add(entry[1:])
		case '-':
			result.Remove(entry[1:])
		default:
			return nil, fmt.Errorf(
				"invalid feature delta (%s): expecting + or - prefix",
				entry)
		}
	}

	return result, nil
}

// The subset of a target's configuration relevant to inline asm register
// availability.  The configuration varies per compilation, hence availability
// is always evaluated against the config in use rather than cached.
type TargetConfig struct {
	Cpu      string
	Features FeatureSet
}

func (config TargetConfig) HasFeature(feature string) bool {
	return config.Features.Has(feature)
}

func (config TargetConfig) String() string {
	return fmt.Sprintf(
		"cpu=%s features=%s",
		config.Cpu,
		strings.Join(config.Features.Sorted(), ","))
}
