package config

import "strings"

// Feature is a bit set of optional protocol features.
type Feature uint8

const (
	// FeatureSequential enables ReadSeq/WriteSeq with a contiguous increment.
	FeatureSequential Feature = 1 << iota

	// FeatureFifo enables repeated access to one address (increment 0).
	FeatureFifo

	// FeatureIncrement enables arbitrary increments on sequential commands.
	FeatureIncrement

	// FeatureCompressed enables ReadComp/WriteComp.
	FeatureCompressed

	// FeatureInterrupt enables unsolicited Interrupt responses.
	FeatureInterrupt

	// FeatureReadModifyWrite enables masked atomic updates.
	FeatureReadModifyWrite

	// FeatureNone is the empty set.
	FeatureNone Feature = 0

	// FeatureAll enables every feature.
	FeatureAll = FeatureSequential | FeatureFifo | FeatureIncrement |
		FeatureCompressed | FeatureInterrupt | FeatureReadModifyWrite
)

var featureNames = []struct {
	f    Feature
	name string
}{
	{FeatureSequential, "sequential"},
	{FeatureFifo, "fifo"},
	{FeatureIncrement, "increment"},
	{FeatureCompressed, "compressed"},
	{FeatureInterrupt, "interrupt"},
	{FeatureReadModifyWrite, "read_modify_write"},
}

// String returns the feature names joined by '|'.
func (f Feature) String() string {
	if f == FeatureNone {
		return "none"
	}
	var parts []string
	for _, fn := range featureNames {
		if f&fn.f != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether every feature in other is also set in f.
func (f Feature) Has(other Feature) bool {
	return f&other == other
}

// ParseFeature returns the single feature with the given name.
func ParseFeature(name string) (Feature, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	for _, fn := range featureNames {
		if fn.name == n {
			return fn.f, true
		}
	}
	if n == "rmw" {
		return FeatureReadModifyWrite, true
	}
	return FeatureNone, false
}

// Names returns the names of the features in f, in declaration order.
func (f Feature) Names() []string {
	var names []string
	for _, fn := range featureNames {
		if f&fn.f != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}
