package optimization

import (
	"fmt"
	"sort"
	"strings"
)

// Result is the outcome of one optimization run.
type Result struct {
	Profit           float64
	ChosenItems      []Item
	ItemToCapacities map[string][]CapacityDimension
}

func (r Result) String() string {
	names := make([]string, 0, len(r.ChosenItems))
	for _, item := range r.ChosenItems {
		names = append(names, item.Name)
	}
	return fmt.Sprintf("Result{profit=%.2f, chosen=[%s]}", r.Profit, strings.Join(names, ", "))
}

// OptimizationFacade selects the subset of items maximizing total value under
// the multi-dimensional capacity constraints.
//
// The algorithm is a deterministic single pass, not a global optimum search:
// items are visited by descending value (original order breaking ties), and an
// item is admitted iff every one of its weight components can be matched to a
// distinct still-free capacity unit. Admission consumes those units
// irrevocably; a rejected item never rolls back earlier admissions.
type OptimizationFacade struct{}

// NewOptimizationFacade creates the solver.
func NewOptimizationFacade() *OptimizationFacade {
	return &OptimizationFacade{}
}

// Calculate runs the selection over the given items and capacity.
func (f *OptimizationFacade) Calculate(items []Item, totalCapacity TotalCapacity) Result {
	byValueDesc := make([]Item, len(items))
	copy(byValueDesc, items)
	sort.SliceStable(byValueDesc, func(i, j int) bool {
		return byValueDesc[i].Value > byValueDesc[j].Value
	})

	available := make([]CapacityDimension, len(totalCapacity.Capacities()))
	copy(available, totalCapacity.Capacities())

	var profit float64
	var chosen []Item
	itemToCapacities := make(map[string][]CapacityDimension)

	for _, item := range byValueDesc {
		if item.IsWeightZero() {
			profit += item.Value
			chosen = append(chosen, item)
			continue
		}
		matched, remaining := matchCapacities(item.TotalWeight, available)
		if matched == nil {
			continue
		}
		available = remaining
		profit += item.Value
		chosen = append(chosen, item)
		itemToCapacities[item.Name] = matched
	}

	return Result{Profit: profit, ChosenItems: chosen, ItemToCapacities: itemToCapacities}
}

// matchCapacities reserves one distinct capacity unit per weight component.
// Returns nil when any component cannot be satisfied; in that case no unit is
// consumed.
func matchCapacities(weight TotalWeight, available []CapacityDimension) (matched, remaining []CapacityDimension) {
	taken := make([]bool, len(available))
	matched = make([]CapacityDimension, 0, len(weight.Components()))

	for _, component := range weight.Components() {
		found := false
		for i, capacity := range available {
			if taken[i] || !component.IsSatisfiedBy(capacity) {
				continue
			}
			taken[i] = true
			matched = append(matched, capacity)
			found = true
			break
		}
		if !found {
			return nil, available
		}
	}

	remaining = make([]CapacityDimension, 0, len(available)-len(matched))
	for i, capacity := range available {
		if !taken[i] {
			remaining = append(remaining, capacity)
		}
	}
	return matched, remaining
}
