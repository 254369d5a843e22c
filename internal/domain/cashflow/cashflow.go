// Package cashflow tracks per-project income and cost. Its earnings feed the
// risk saga and the relocation simulations.
package cashflow

import (
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
)

// Income is a project's expected income, in whole currency units.
type Income int64

// Cost is a project's expected cost, in whole currency units.
type Cost int64

// Earnings is income minus cost.
type Earnings int64

// Minus subtracts the cost from the income.
func (i Income) Minus(cost Cost) Earnings {
	return Earnings(int64(i) - int64(cost))
}

// GreaterThan compares earnings.
func (e Earnings) GreaterThan(other Earnings) bool {
	return e > other
}

// ToFloat converts earnings to the value used in profit simulations.
func (e Earnings) ToFloat() float64 {
	return float64(e)
}

// Cashflow is the per-project income/cost record.
type Cashflow struct {
	projectID allocation.ProjectAllocationsID
	income    Income
	cost      Cost
}

// NewCashflow creates an empty record for the project.
func NewCashflow(projectID allocation.ProjectAllocationsID) *Cashflow {
	return &Cashflow{projectID: projectID}
}

// RestoreCashflow rehydrates a record from persisted state.
func RestoreCashflow(projectID allocation.ProjectAllocationsID, income Income, cost Cost) *Cashflow {
	return &Cashflow{projectID: projectID, income: income, cost: cost}
}

// Update replaces the income and cost.
func (c *Cashflow) Update(income Income, cost Cost) {
	c.income = income
	c.cost = cost
}

// Earnings returns income minus cost.
func (c *Cashflow) Earnings() Earnings {
	return c.income.Minus(c.cost)
}

// ProjectID returns the owning project.
func (c *Cashflow) ProjectID() allocation.ProjectAllocationsID { return c.projectID }

// Income returns the recorded income.
func (c *Cashflow) Income() Income { return c.income }

// Cost returns the recorded cost.
func (c *Cashflow) Cost() Cost { return c.cost }
