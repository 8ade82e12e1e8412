// Package budget computes per-participant and per-payer budget figures for an event.
//
// Every function here is pure: inputs are read-only snapshots supplied by the
// caller, nothing is cached between calls, and all functions are safe for
// concurrent use.
package budget

import (
	"github.com/shopspring/decimal"
)

// ParticipantType distinguishes adult and child participants.
type ParticipantType string

const (
	Adult ParticipantType = "ADULT"
	Child ParticipantType = "CHILD"
)

// Valid reports whether t is a known participant type.
func (t ParticipantType) Valid() bool {
	return t == Adult || t == Child
}

// Event holds the budget configuration of an event.
type Event struct {
	// AdultBudget is the standard budget for an adult participant.
	AdultBudget decimal.Decimal

	// ChildBudget is the standard budget for a child participant.
	ChildBudget decimal.Decimal

	// GeneralCosts is added once to the total regardless of participant count.
	GeneralCosts decimal.Decimal
}

// Participant is the engine's view of one participant.
type Participant struct {
	ID   string
	Type ParticipantType

	// CustomBudget overrides the event's standard budget when Valid.
	CustomBudget decimal.NullDecimal

	// IsCouple is true when the participant is paired. PartnerID is empty
	// when no partner is attached, even if IsCouple is set.
	IsCouple  bool
	PartnerID string
}

func (p Participant) pairedWithPartner() bool {
	return p.IsCouple && p.PartnerID != ""
}

// ParticipantBudget returns the effective budget of p within e.
// A couple member with a partner present gets half of the base budget.
func ParticipantBudget(p Participant, e Event) decimal.Decimal {
	base := e.ChildBudget
	switch {
	case p.CustomBudget.Valid:
		base = p.CustomBudget.Decimal
	case p.Type == Adult:
		base = e.AdultBudget
	}

	if p.pairedWithPartner() {
		return divideMoney(base, 2)
	}
	return base
}

// TotalBudget sums the budgets of all participants and adds the general costs once.
func TotalBudget(e Event, participants []Participant) decimal.Decimal {
	total := decimal.Zero
	for _, p := range participants {
		total = total.Add(ParticipantBudget(p, e))
	}
	total = total.Add(e.GeneralCosts)
	return RoundMoney(total)
}

// DefaultPayers returns the adult participants, in input order.
func DefaultPayers(participants []Participant) []Participant {
	var payers []Participant
	for _, p := range participants {
		if p.Type == Adult {
			payers = append(payers, p)
		}
	}
	return payers
}

// NumberOfPayerUnits counts distinct paying parties. A couple counts once,
// whether one or both members appear in payers. A couple member without
// partner data counts once per id. Singles are not de-duplicated: listing
// the same single twice counts it twice, so callers pass distinct payers.
func NumberOfPayerUnits(payers []Participant) int {
	count := 0
	seen := make(map[string]bool, len(payers))

	for _, p := range payers {
		switch {
		case p.pairedWithPartner():
			if !seen[p.ID] && !seen[p.PartnerID] {
				count++
				seen[p.ID] = true
				seen[p.PartnerID] = true
			}
		case p.IsCouple:
			if !seen[p.ID] {
				count++
				seen[p.ID] = true
			}
		default:
			count++
		}
	}
	return count
}

// BudgetPerPayer divides the total budget across payer units. When payers is
// empty the adult participants are used; zero units yields zero.
func BudgetPerPayer(e Event, participants, payers []Participant) decimal.Decimal {
	total := TotalBudget(e, participants)

	if len(payers) == 0 {
		payers = DefaultPayers(participants)
	}

	units := NumberOfPayerUnits(payers)
	if units == 0 {
		return decimal.Zero
	}
	return divideMoney(total, int64(units))
}

// Summary bundles every figure derived for one event.
type Summary struct {
	// ParticipantBudgets maps participant id to its effective budget.
	ParticipantBudgets map[string]decimal.Decimal
	TotalBudget        decimal.Decimal
	BudgetPerPayer     decimal.Decimal
	NumberOfPayers     int
}

// Summarize computes all budget figures for e. Payers default to the adult
// participants when none are given, for both the per-payer budget and the
// payer count.
func Summarize(e Event, participants, payers []Participant) Summary {
	if len(payers) == 0 {
		payers = DefaultPayers(participants)
	}

	budgets := make(map[string]decimal.Decimal, len(participants))
	for _, p := range participants {
		budgets[p.ID] = ParticipantBudget(p, e)
	}

	return Summary{
		ParticipantBudgets: budgets,
		TotalBudget:        TotalBudget(e, participants),
		BudgetPerPayer:     BudgetPerPayer(e, participants, payers),
		NumberOfPayers:     NumberOfPayerUnits(payers),
	}
}
