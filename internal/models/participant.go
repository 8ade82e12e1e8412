package models

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/eventbudget/internal/budget"
)

// ParticipantType is either budget.Adult or budget.Child.
type ParticipantType = budget.ParticipantType

// Participant represents a person attending an event.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// EventID is the event this participant belongs to.
	EventID string

	// Name is the display name of the participant.
	Name string

	// Type decides which standard budget applies.
	Type ParticipantType

	// CustomBudget overrides the standard budget when Valid.
	CustomBudget decimal.NullDecimal

	// IsCouple is true iff PartnerID is set. Storage keeps both in sync.
	IsCouple bool

	// PartnerID references the other half of a couple in the same event.
	PartnerID string

	// UserID optionally links the participant to a registered user.
	UserID string
}

// BudgetParticipant returns the engine's view of p.
func (p *Participant) BudgetParticipant() budget.Participant {
	return budget.Participant{
		ID:           p.ID,
		Type:         p.Type,
		CustomBudget: p.CustomBudget,
		IsCouple:     p.IsCouple,
		PartnerID:    p.PartnerID,
	}
}

// BudgetParticipants converts a participant list for the engine, keeping order.
func BudgetParticipants(ps []*Participant) []budget.Participant {
	out := make([]budget.Participant, len(ps))
	for i, p := range ps {
		out[i] = p.BudgetParticipant()
	}
	return out
}

// ParticipantIndex looks participants up by id.
type ParticipantIndex map[string]*Participant

// IndexParticipants builds an id lookup over ps.
func IndexParticipants(ps []*Participant) ParticipantIndex {
	idx := make(ParticipantIndex, len(ps))
	for _, p := range ps {
		idx[p.ID] = p
	}
	return idx
}

// Partner returns the partner of the participant with the given id, if any.
func (idx ParticipantIndex) Partner(id string) (*Participant, bool) {
	p, ok := idx[id]
	if !ok || p.PartnerID == "" {
		return nil, false
	}
	partner, ok := idx[p.PartnerID]
	return partner, ok
}
