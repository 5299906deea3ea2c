package field

import "fmt"

// Range describes the values a field may take. SmallestMax is the maximum in
// the shortest period (e.g. 28 for day-of-month) and Max the largest.
type Range struct {
	Min         int64
	SmallestMax int64
	Max         int64
}

// Fixed returns a range whose maximum does not vary.
func Fixed(minV, maxV int64) Range {
	return Range{Min: minV, SmallestMax: maxV, Max: maxV}
}

// Variable returns a range whose maximum varies between smallestMax and maxV.
func Variable(minV, smallestMax, maxV int64) Range {
	return Range{Min: minV, SmallestMax: smallestMax, Max: maxV}
}

// IsFixed reports whether the maximum never varies.
func (r Range) IsFixed() bool {
	return r.SmallestMax == r.Max
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	if r.IsFixed() {
		return fmt.Sprintf("%d - %d", r.Min, r.Max)
	}
	return fmt.Sprintf("%d - %d/%d", r.Min, r.SmallestMax, r.Max)
}
