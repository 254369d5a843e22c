// Package optimization implements the multi-capacity selection engine: given
// candidate items that each consume units of independent capacity dimensions,
// it chooses the subset maximizing total value without exceeding any dimension.
package optimization

// CapacityDimension is one available unit of capacity, e.g. a concrete
// resource instance offering a capability during a time window.
type CapacityDimension interface{}

// WeightDimension is one required unit of an item's weight. It decides which
// capacity units can absorb it.
type WeightDimension interface {
	IsSatisfiedBy(capacity CapacityDimension) bool
}

// TotalWeight is the full requirement vector of an item.
type TotalWeight struct {
	components []WeightDimension
}

// NewTotalWeight collects the requirement components.
func NewTotalWeight(components ...WeightDimension) TotalWeight {
	return TotalWeight{components: components}
}

// ZeroWeight is the empty requirement vector.
func ZeroWeight() TotalWeight {
	return TotalWeight{}
}

// Components returns the requirement components.
func (w TotalWeight) Components() []WeightDimension {
	return w.components
}

// TotalCapacity is the full set of available capacity units.
type TotalCapacity struct {
	capacities []CapacityDimension
}

// NewTotalCapacity collects the capacity units.
func NewTotalCapacity(capacities ...CapacityDimension) TotalCapacity {
	return TotalCapacity{capacities: capacities}
}

// Size returns the number of capacity units.
func (c TotalCapacity) Size() int {
	return len(c.capacities)
}

// Capacities returns the capacity units.
func (c TotalCapacity) Capacities() []CapacityDimension {
	return c.capacities
}

// Add returns the capacity extended by further units.
func (c TotalCapacity) Add(capacities ...CapacityDimension) TotalCapacity {
	combined := make([]CapacityDimension, 0, len(c.capacities)+len(capacities))
	combined = append(combined, c.capacities...)
	combined = append(combined, capacities...)
	return TotalCapacity{capacities: combined}
}

// Item is one selectable candidate: a name, a value and the capacity units it
// would consume.
type Item struct {
	Name        string
	Value       float64
	TotalWeight TotalWeight
}

// IsWeightZero reports whether the item consumes no capacity at all. Such
// items are always admitted.
func (i Item) IsWeightZero() bool {
	return len(i.TotalWeight.Components()) == 0
}
