package models

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/eventbudget/internal/budget"
)

// Event represents an occasion whose costs are shared among participants.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// Name is the display name of the event (e.g., "Lake house 2026").
	Name string

	// Description is optional free text.
	Description string

	// AdultBudget is the standard budget for an adult participant.
	AdultBudget decimal.Decimal

	// ChildBudget is the standard budget for a child participant.
	ChildBudget decimal.Decimal

	// GeneralCosts are shared costs added once to the event total.
	GeneralCosts decimal.Decimal

	// CreatorID is the user who created the event. Only the creator may
	// read or change the event and its participants and payments.
	CreatorID string

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64
}

// BudgetEvent returns the budget configuration of e.
func (e *Event) BudgetEvent() budget.Event {
	return budget.Event{
		AdultBudget:  e.AdultBudget,
		ChildBudget:  e.ChildBudget,
		GeneralCosts: e.GeneralCosts,
	}
}
