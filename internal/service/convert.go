package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/eventbudget/internal/budget"
	"github.com/mmynk/eventbudget/internal/models"
	"github.com/mmynk/eventbudget/pkg/api"
)

// Money parsing for request fields. Empty values are zero (or unset for
// optional fields); negative or malformed values are InvalidArgument.

func parseMoneyField(field, value string) (decimal.Decimal, error) {
	d, err := budget.ParseMoney(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, invalidArgument("%s: %v", field, err)
	}
	return d, nil
}

func parseOptionalMoneyField(field, value string) (decimal.NullDecimal, error) {
	d, err := budget.ParseOptionalMoney(strings.TrimSpace(value))
	if err != nil {
		return decimal.NullDecimal{}, invalidArgument("%s: %v", field, err)
	}
	return d, nil
}

func parseParticipantType(value string) (models.ParticipantType, error) {
	t := models.ParticipantType(strings.ToUpper(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", invalidArgument("type must be %s or %s, got %q", budget.Adult, budget.Child, value)
	}
	return t, nil
}

func requireName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalidArgument("%s required", field)
	}
	return value, nil
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func participantToAPI(p *models.Participant, calculated decimal.Decimal) *api.Participant {
	out := &api.Participant{
		ID:               p.ID,
		EventID:          p.EventID,
		Name:             p.Name,
		Type:             string(p.Type),
		IsCouple:         p.IsCouple,
		PartnerID:        p.PartnerID,
		UserID:           p.UserID,
		CalculatedBudget: budget.FormatMoney(calculated),
	}
	if p.CustomBudget.Valid {
		out.CustomBudget = budget.FormatMoney(p.CustomBudget.Decimal)
	}
	return out
}

// paymentToAPI resolves the linked participant and its partner by name.
func paymentToAPI(p *models.Payment, idx models.ParticipantIndex) *api.Payment {
	out := &api.Payment{
		ID:            p.ID,
		EventID:       p.EventID,
		Amount:        budget.FormatMoney(p.Amount),
		PayerName:     p.PayerName,
		ParticipantID: p.ParticipantID,
		Note:          p.Note,
		CreatedAt:     p.CreatedAt,
	}
	if participant, ok := idx[p.ParticipantID]; ok {
		out.ParticipantName = participant.Name
		if partner, ok := idx.Partner(participant.ID); ok {
			out.PartnerName = partner.Name
		}
	}
	return out
}

// eventToAPI builds the full event representation with computed budgets.
// Payers default to the adult participants.
func eventToAPI(e *models.Event, participants []*models.Participant, payments []*models.Payment) *api.Event {
	summary := budget.Summarize(e.BudgetEvent(), models.BudgetParticipants(participants), nil)
	idx := models.IndexParticipants(participants)

	out := &api.Event{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		AdultBudget:    budget.FormatMoney(e.AdultBudget),
		ChildBudget:    budget.FormatMoney(e.ChildBudget),
		GeneralCosts:   budget.FormatMoney(e.GeneralCosts),
		CreatorID:      e.CreatorID,
		CreatedAt:      e.CreatedAt,
		Participants:   make([]*api.Participant, 0, len(participants)),
		Payments:       make([]*api.Payment, 0, len(payments)),
		TotalBudget:    budget.FormatMoney(summary.TotalBudget),
		BudgetPerPayer: budget.FormatMoney(summary.BudgetPerPayer),
		NumberOfPayers: int32(summary.NumberOfPayers),
	}
	for _, p := range participants {
		out.Participants = append(out.Participants, participantToAPI(p, summary.ParticipantBudgets[p.ID]))
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, paymentToAPI(p, idx))
	}
	return out
}

// summaryToAPI lists participant budgets in input order. names may be nil.
func summaryToAPI(summary budget.Summary, participants []budget.Participant, names map[string]string) *api.BudgetSummary {
	out := &api.BudgetSummary{
		ParticipantBudgets: make([]*api.ParticipantBudget, 0, len(participants)),
		TotalBudget:        budget.FormatMoney(summary.TotalBudget),
		BudgetPerPayer:     budget.FormatMoney(summary.BudgetPerPayer),
		NumberOfPayers:     int32(summary.NumberOfPayers),
	}
	for _, p := range participants {
		out.ParticipantBudgets = append(out.ParticipantBudgets, &api.ParticipantBudget{
			ParticipantID: p.ID,
			Name:          names[p.ID],
			Budget:        budget.FormatMoney(summary.ParticipantBudgets[p.ID]),
		})
	}
	return out
}

// dedupe drops empty and repeated ids, keeping first occurrences in order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
