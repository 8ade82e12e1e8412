package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/eventbudget/internal/budget"
	"github.com/mmynk/eventbudget/internal/models"
	"github.com/mmynk/eventbudget/internal/storage"
	"github.com/mmynk/eventbudget/pkg/api"
)

var _ api.EventServiceHandler = (*EventService)(nil)

// EventService implements the Connect EventService.
type EventService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewEventService creates a new EventService with the given storage backend.
func NewEventService(store storage.Store, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{store: store, logger: logger}
}

type eventBudgets struct {
	adult, child, general decimal.Decimal
}

func parseEventBudgets(adult, child, general string) (eventBudgets, error) {
	var b eventBudgets
	var err error
	if b.adult, err = parseMoneyField("adult_budget", adult); err != nil {
		return b, err
	}
	if b.child, err = parseMoneyField("child_budget", child); err != nil {
		return b, err
	}
	if b.general, err = parseMoneyField("general_costs", general); err != nil {
		return b, err
	}
	return b, nil
}

// CreateEvent creates an event owned by the caller.
func (s *EventService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateEvent request received", "name", req.Msg.Name, "user_id", userID)

	name, err := requireName("name", req.Msg.Name)
	if err != nil {
		return nil, err
	}
	budgets, err := parseEventBudgets(req.Msg.AdultBudget, req.Msg.ChildBudget, req.Msg.GeneralCosts)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:         name,
		Description:  req.Msg.Description,
		AdultBudget:  budgets.adult,
		ChildBudget:  budgets.child,
		GeneralCosts: budgets.general,
		CreatorID:    userID,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		s.logger.Error("CreateEvent failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Event created", "event_id", event.ID)
	return connect.NewResponse(&api.CreateEventResponse{
		Event: eventToAPI(event, nil, nil),
	}), nil
}

// loadEvent fetches the participants and payments of event and renders it.
func (s *EventService) loadEvent(ctx context.Context, event *models.Event) (*api.Event, error) {
	participants, err := s.store.ListParticipantsByEvent(ctx, event.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	payments, err := s.store.ListPaymentsByEvent(ctx, event.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return eventToAPI(event, participants, payments), nil
}

// GetEvent returns an event with participants, payments and budget figures.
func (s *EventService) GetEvent(ctx context.Context, req *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	s.logger.Info("GetEvent request received", "event_id", req.Msg.EventID)

	event, err := ownedEvent(ctx, s.store, req.Msg.EventID)
	if err != nil {
		return nil, err
	}

	out, err := s.loadEvent(ctx, event)
	if err != nil {
		s.logger.Error("GetEvent failed", "event_id", event.ID, "error", err)
		return nil, err
	}

	return connect.NewResponse(&api.GetEventResponse{Event: out}), nil
}

// ListEvents returns every event created by the caller, newest first.
func (s *EventService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.store.ListEventsByCreator(ctx, userID)
	if err != nil {
		s.logger.Error("ListEvents failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Event, 0, len(events))
	for _, event := range events {
		e, err := s.loadEvent(ctx, event)
		if err != nil {
			s.logger.Error("ListEvents failed", "event_id", event.ID, "error", err)
			return nil, err
		}
		out = append(out, e)
	}

	s.logger.Info("ListEvents successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListEventsResponse{Events: out}), nil
}

// UpdateEvent replaces the name, description and budgets of an event.
func (s *EventService) UpdateEvent(ctx context.Context, req *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error) {
	s.logger.Info("UpdateEvent request received", "event_id", req.Msg.EventID)

	event, err := ownedEvent(ctx, s.store, req.Msg.EventID)
	if err != nil {
		return nil, err
	}

	name, err := requireName("name", req.Msg.Name)
	if err != nil {
		return nil, err
	}
	budgets, err := parseEventBudgets(req.Msg.AdultBudget, req.Msg.ChildBudget, req.Msg.GeneralCosts)
	if err != nil {
		return nil, err
	}

	event.Name = name
	event.Description = req.Msg.Description
	event.AdultBudget = budgets.adult
	event.ChildBudget = budgets.child
	event.GeneralCosts = budgets.general

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		s.logger.Error("UpdateEvent failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	out, err := s.loadEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Event updated", "event_id", event.ID)
	return connect.NewResponse(&api.UpdateEventResponse{Event: out}), nil
}

// DeleteEvent removes an event with its participants and payments.
func (s *EventService) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	s.logger.Info("DeleteEvent request received", "event_id", req.Msg.EventID)

	event, err := ownedEvent(ctx, s.store, req.Msg.EventID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteEvent(ctx, event.ID); err != nil {
		s.logger.Error("DeleteEvent failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Event deleted", "event_id", event.ID)
	return connect.NewResponse(&api.DeleteEventResponse{}), nil
}

// GetEventBudget computes the budget of a stored event, optionally for an
// explicit set of payers. Payer ids are de-duplicated and must belong to the
// event.
func (s *EventService) GetEventBudget(ctx context.Context, req *connect.Request[api.GetEventBudgetRequest]) (*connect.Response[api.GetEventBudgetResponse], error) {
	s.logger.Info("GetEventBudget request received",
		"event_id", req.Msg.EventID,
		"payers_count", len(req.Msg.PayerIDs),
	)

	event, err := ownedEvent(ctx, s.store, req.Msg.EventID)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipantsByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("GetEventBudget failed - could not list participants", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	idx := models.IndexParticipants(participants)
	var payers []budget.Participant
	for _, id := range dedupe(req.Msg.PayerIDs) {
		p, ok := idx[id]
		if !ok {
			return nil, invalidArgument("payer %s is not a participant of event %s", id, event.ID)
		}
		payers = append(payers, p.BudgetParticipant())
	}

	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	all := models.BudgetParticipants(participants)
	summary := budget.Summarize(event.BudgetEvent(), all, payers)

	s.logger.Info("GetEventBudget successful",
		"event_id", event.ID,
		"total_budget", budget.FormatMoney(summary.TotalBudget),
		"payer_units", summary.NumberOfPayers,
	)
	return connect.NewResponse(&api.GetEventBudgetResponse{
		Budget: summaryToAPI(summary, all, names),
	}), nil
}

// CalculateBudget runs the budget calculation on inline data without
// touching storage.
func (s *EventService) CalculateBudget(ctx context.Context, req *connect.Request[api.CalculateBudgetRequest]) (*connect.Response[api.CalculateBudgetResponse], error) {
	s.logger.Info("CalculateBudget request received",
		"participants_count", len(req.Msg.Participants),
		"payers_count", len(req.Msg.PayerIDs),
	)

	budgets, err := parseEventBudgets(req.Msg.AdultBudget, req.Msg.ChildBudget, req.Msg.GeneralCosts)
	if err != nil {
		return nil, err
	}
	event := budget.Event{
		AdultBudget:  budgets.adult,
		ChildBudget:  budgets.child,
		GeneralCosts: budgets.general,
	}

	participants, names, err := inlineParticipants(req.Msg.Participants)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]budget.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	var payers []budget.Participant
	for _, id := range dedupe(req.Msg.PayerIDs) {
		p, ok := byID[id]
		if !ok {
			return nil, invalidArgument("payer %s is not among the participants", id)
		}
		payers = append(payers, p)
	}

	summary := budget.Summarize(event, participants, payers)
	return connect.NewResponse(&api.CalculateBudgetResponse{
		Budget: summaryToAPI(summary, participants, names),
	}), nil
}

// inlineParticipants validates CalculateBudget participants. Ids must be
// unique and a partner reference must point at another listed participant
// that points back, with is_couple set on both sides.
func inlineParticipants(in []*api.BudgetParticipant) ([]budget.Participant, map[string]string, error) {
	out := make([]budget.Participant, 0, len(in))
	names := make(map[string]string, len(in))
	ids := make(map[string]bool, len(in))
	index := make(map[string]int, len(in))

	for i, p := range in {
		if p == nil || p.ID == "" {
			return nil, nil, invalidArgument("participants[%d]: id required", i)
		}
		if ids[p.ID] {
			return nil, nil, invalidArgument("participants[%d]: duplicate id %s", i, p.ID)
		}
		ids[p.ID] = true
		index[p.ID] = i

		t, err := parseParticipantType(p.Type)
		if err != nil {
			return nil, nil, err
		}
		custom, err := parseOptionalMoneyField(fmt.Sprintf("participants[%d].custom_budget", i), p.CustomBudget)
		if err != nil {
			return nil, nil, err
		}

		out = append(out, budget.Participant{
			ID:           p.ID,
			Type:         t,
			CustomBudget: custom,
			IsCouple:     p.IsCouple,
			PartnerID:    p.PartnerID,
		})
		names[p.ID] = p.Name
	}

	for i, p := range out {
		if p.PartnerID == "" {
			continue
		}
		if p.PartnerID == p.ID {
			return nil, nil, invalidArgument("participants[%d]: cannot be its own partner", i)
		}
		if !ids[p.PartnerID] {
			return nil, nil, invalidArgument("participants[%d]: partner %s not among the participants", i, p.PartnerID)
		}
		if !p.IsCouple {
			return nil, nil, invalidArgument("participants[%d]: partner set but is_couple is false", i)
		}
		if partner := out[index[p.PartnerID]]; partner.PartnerID != p.ID {
			return nil, nil, invalidArgument("participants[%d]: partner %s is not paired back", i, p.PartnerID)
		}
	}

	return out, names, nil
}
