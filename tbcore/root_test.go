package tbcore

import "testing"

func TestHasRepeatedFindsEarlierIdenticalKeyFourPliesBack(t *testing.T) {
	e2 := &fakePosition{key: 42}
	d := &fakePosition{key: 1, prev: e2}
	c := &fakePosition{key: 2, prev: d}
	b := &fakePosition{key: 3, prev: c}
	a := &fakePosition{key: 42, rule50: 4, pliesFromNull: 4, prev: b}
	leaf := &fakePosition{key: 99, prev: a}

	if !hasRepeated(leaf) {
		t.Error("hasRepeated did not find the repetition four plies back within the window")
	}
}

func TestHasRepeatedStopsAtRule50Boundary(t *testing.T) {
	e2 := &fakePosition{key: 42}
	d := &fakePosition{key: 1, prev: e2}
	c := &fakePosition{key: 2, prev: d}
	b := &fakePosition{key: 3, prev: c}
	a := &fakePosition{key: 42, rule50: 0, pliesFromNull: 4, prev: b}
	leaf := &fakePosition{key: 99, prev: a}

	if hasRepeated(leaf) {
		t.Error("hasRepeated should not look past a zeroed rule50 counter")
	}
}

func TestHasRepeatedBoundedByPliesFromNullEvenWhenRule50IsHigh(t *testing.T) {
	// A null move resets PliesFromNull but not Rule50, so a repetition that
	// lies within the rule50 window but past the pliesFromNull window must
	// not be reported - min(rule50, pliesFromNull) governs, not rule50 alone.
	e2 := &fakePosition{key: 42}
	d := &fakePosition{key: 1, prev: e2}
	c := &fakePosition{key: 2, prev: d}
	b := &fakePosition{key: 3, prev: c}
	a := &fakePosition{key: 42, rule50: 10, pliesFromNull: 2, prev: b}
	leaf := &fakePosition{key: 99, prev: a}

	if hasRepeated(leaf) {
		t.Error("hasRepeated should be bounded by pliesFromNull, not rule50 alone")
	}
}
