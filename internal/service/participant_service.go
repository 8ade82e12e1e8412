package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/eventbudget/internal/budget"
	"github.com/mmynk/eventbudget/internal/models"
	"github.com/mmynk/eventbudget/internal/storage"
	"github.com/mmynk/eventbudget/pkg/api"
)

var _ api.ParticipantServiceHandler = (*ParticipantService)(nil)

// ParticipantService implements the Connect ParticipantService.
type ParticipantService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewParticipantService creates a new ParticipantService with the given storage backend.
func NewParticipantService(store storage.Store, logger *slog.Logger) *ParticipantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParticipantService{store: store, logger: logger}
}

// participantFields holds the validated, user-editable fields of a participant.
type participantFields struct {
	name    string
	typ     models.ParticipantType
	custom  string
	partner string
	user    string
}

func (s *ParticipantService) validate(ctx context.Context, event *models.Event, selfID string, f participantFields) (*models.Participant, error) {
	name, err := requireName("name", f.name)
	if err != nil {
		return nil, err
	}
	typ, err := parseParticipantType(string(f.typ))
	if err != nil {
		return nil, err
	}
	custom, err := parseOptionalMoneyField("custom_budget", f.custom)
	if err != nil {
		return nil, err
	}

	if f.partner != "" {
		if f.partner == selfID {
			return nil, invalidArgument("a participant cannot be its own partner")
		}
		partner, err := s.store.GetParticipant(ctx, f.partner)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, invalidArgument("partner %s not found", f.partner)
		}
		if err != nil {
			return nil, toConnectError(err)
		}
		if partner.EventID != event.ID {
			return nil, invalidArgument("partner %s belongs to another event", f.partner)
		}
	}

	if f.user != "" {
		if _, err := s.store.GetUserByID(ctx, f.user); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, invalidArgument("user %s not found", f.user)
			}
			return nil, toConnectError(err)
		}
	}

	return &models.Participant{
		ID:           selfID,
		EventID:      event.ID,
		Name:         name,
		Type:         typ,
		CustomBudget: custom,
		PartnerID:    f.partner,
		UserID:       f.user,
	}, nil
}

func toParticipantAPI(p *models.Participant, event *models.Event) *api.Participant {
	return participantToAPI(p, budget.ParticipantBudget(p.BudgetParticipant(), event.BudgetEvent()))
}

// ownedParticipant loads a participant and checks the caller owns its event.
func (s *ParticipantService) ownedParticipant(ctx context.Context, participantID string) (*models.Participant, *models.Event, error) {
	if _, err := currentUserID(ctx); err != nil {
		return nil, nil, err
	}
	if participantID == "" {
		return nil, nil, invalidArgument("participant_id required")
	}
	p, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, nil, toConnectError(err)
	}
	event, err := ownedEvent(ctx, s.store, p.EventID)
	if err != nil {
		return nil, nil, err
	}
	return p, event, nil
}

// CreateParticipant adds a participant to an event, pairing it with a
// partner when one is given.
func (s *ParticipantService) CreateParticipant(ctx context.Context, req *connect.Request[api.CreateParticipantRequest]) (*connect.Response[api.CreateParticipantResponse], error) {
	s.logger.Info("CreateParticipant request received",
		"event_id", req.Msg.EventID,
		"name", req.Msg.Name,
		"type", req.Msg.Type,
	)

	event, err := ownedEvent(ctx, s.store, req.Msg.EventID)
	if err != nil {
		return nil, err
	}

	p, err := s.validate(ctx, event, "", participantFields{
		name:    req.Msg.Name,
		typ:     models.ParticipantType(req.Msg.Type),
		custom:  req.Msg.CustomBudget,
		partner: req.Msg.PartnerID,
		user:    req.Msg.UserID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateParticipant(ctx, p); err != nil {
		s.logger.Error("CreateParticipant failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Participant created", "participant_id", p.ID, "partner_id", p.PartnerID)
	return connect.NewResponse(&api.CreateParticipantResponse{
		Participant: toParticipantAPI(p, event),
	}), nil
}

// UpdateParticipant replaces a participant's fields. Setting a new partner
// releases both previous partners; clearing it breaks the pairing.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, req *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.UpdateParticipantResponse], error) {
	s.logger.Info("UpdateParticipant request received", "participant_id", req.Msg.ParticipantID)

	current, event, err := s.ownedParticipant(ctx, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}

	p, err := s.validate(ctx, event, current.ID, participantFields{
		name:    req.Msg.Name,
		typ:     models.ParticipantType(req.Msg.Type),
		custom:  req.Msg.CustomBudget,
		partner: req.Msg.PartnerID,
		user:    req.Msg.UserID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateParticipant(ctx, p); err != nil {
		s.logger.Error("UpdateParticipant failed", "participant_id", p.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Participant updated", "participant_id", p.ID, "partner_id", p.PartnerID)
	return connect.NewResponse(&api.UpdateParticipantResponse{
		Participant: toParticipantAPI(p, event),
	}), nil
}

// DeleteParticipant removes a participant and releases its partner.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, req *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error) {
	s.logger.Info("DeleteParticipant request received", "participant_id", req.Msg.ParticipantID)

	p, _, err := s.ownedParticipant(ctx, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteParticipant(ctx, p.ID); err != nil {
		s.logger.Error("DeleteParticipant failed", "participant_id", p.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Participant deleted", "participant_id", p.ID)
	return connect.NewResponse(&api.DeleteParticipantResponse{}), nil
}

// ListParticipants returns the participants of an event with their budgets.
func (s *ParticipantService) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	event, err := ownedEvent(ctx, s.store, req.Msg.EventID)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipantsByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("ListParticipants failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Participant, 0, len(participants))
	for _, p := range participants {
		out = append(out, toParticipantAPI(p, event))
	}

	s.logger.Info("ListParticipants successful", "event_id", event.ID, "count", len(out))
	return connect.NewResponse(&api.ListParticipantsResponse{Participants: out}), nil
}
