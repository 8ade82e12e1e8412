package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/eventbudget/internal/models"
	"github.com/mmynk/eventbudget/internal/storage"
	"github.com/mmynk/eventbudget/pkg/api"
)

var _ api.PaymentServiceHandler = (*PaymentService)(nil)

// minPayment is the smallest amount a payment may record.
var minPayment = decimal.New(1, -2)

// PaymentService implements the Connect PaymentService.
type PaymentService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store, logger *slog.Logger) *PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentService{store: store, logger: logger}
}

// buildPayment validates payment fields for event. The payer name falls back
// to the linked participant's name.
func (s *PaymentService) buildPayment(ctx context.Context, event *models.Event, amount, payerName, participantID, note string) (*models.Payment, error) {
	if amount == "" {
		return nil, invalidArgument("amount required")
	}
	value, err := parseMoneyField("amount", amount)
	if err != nil {
		return nil, err
	}
	if value.LessThan(minPayment) {
		return nil, invalidArgument("amount must be at least %s", minPayment.StringFixed(2))
	}

	if participantID != "" {
		participant, err := s.store.GetParticipant(ctx, participantID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, invalidArgument("participant %s not found", participantID)
		}
		if err != nil {
			return nil, toConnectError(err)
		}
		if participant.EventID != event.ID {
			return nil, invalidArgument("participant %s belongs to another event", participantID)
		}
		if payerName == "" {
			payerName = participant.Name
		}
	}

	payerName, err = requireName("payer_name", payerName)
	if err != nil {
		return nil, err
	}

	return &models.Payment{
		EventID:       event.ID,
		Amount:        value,
		PayerName:     payerName,
		ParticipantID: participantID,
		Note:          note,
	}, nil
}

// render resolves participant and partner names for a payment response.
func (s *PaymentService) render(ctx context.Context, payment *models.Payment) (*api.Payment, error) {
	participants, err := s.store.ListParticipantsByEvent(ctx, payment.EventID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return paymentToAPI(payment, models.IndexParticipants(participants)), nil
}

func (s *PaymentService) ownedPayment(ctx context.Context, paymentID string) (*models.Payment, *models.Event, error) {
	if _, err := currentUserID(ctx); err != nil {
		return nil, nil, err
	}
	if paymentID == "" {
		return nil, nil, invalidArgument("payment_id required")
	}
	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, nil, toConnectError(err)
	}
	event, err := ownedEvent(ctx, s.store, payment.EventID)
	if err != nil {
		return nil, nil, err
	}
	return payment, event, nil
}

// CreatePayment records a payment against an event.
func (s *PaymentService) CreatePayment(ctx context.Context, req *connect.Request[api.CreatePaymentRequest]) (*connect.Response[api.CreatePaymentResponse], error) {
	s.logger.Info("CreatePayment request received",
		"event_id", req.Msg.EventID,
		"amount", req.Msg.Amount,
		"participant_id", req.Msg.ParticipantID,
	)

	event, err := ownedEvent(ctx, s.store, req.Msg.EventID)
	if err != nil {
		return nil, err
	}

	payment, err := s.buildPayment(ctx, event, req.Msg.Amount, req.Msg.PayerName, req.Msg.ParticipantID, req.Msg.Note)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		s.logger.Error("CreatePayment failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}

	out, err := s.render(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment created", "payment_id", payment.ID)
	return connect.NewResponse(&api.CreatePaymentResponse{Payment: out}), nil
}

// UpdatePayment replaces the amount, payer, note and participant link of a payment.
func (s *PaymentService) UpdatePayment(ctx context.Context, req *connect.Request[api.UpdatePaymentRequest]) (*connect.Response[api.UpdatePaymentResponse], error) {
	s.logger.Info("UpdatePayment request received", "payment_id", req.Msg.PaymentID)

	current, event, err := s.ownedPayment(ctx, req.Msg.PaymentID)
	if err != nil {
		return nil, err
	}

	payment, err := s.buildPayment(ctx, event, req.Msg.Amount, req.Msg.PayerName, req.Msg.ParticipantID, req.Msg.Note)
	if err != nil {
		return nil, err
	}
	payment.ID = current.ID
	payment.CreatedAt = current.CreatedAt

	if err := s.store.UpdatePayment(ctx, payment); err != nil {
		s.logger.Error("UpdatePayment failed", "payment_id", payment.ID, "error", err)
		return nil, toConnectError(err)
	}

	out, err := s.render(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment updated", "payment_id", payment.ID)
	return connect.NewResponse(&api.UpdatePaymentResponse{Payment: out}), nil
}

// DeletePayment removes a payment.
func (s *PaymentService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	s.logger.Info("DeletePayment request received", "payment_id", req.Msg.PaymentID)

	payment, _, err := s.ownedPayment(ctx, req.Msg.PaymentID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeletePayment(ctx, payment.ID); err != nil {
		s.logger.Error("DeletePayment failed", "payment_id", payment.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Payment deleted", "payment_id", payment.ID)
	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

// ListPayments returns the payments of an event, oldest first.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	event, err := ownedEvent(ctx, s.store, req.Msg.EventID)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPaymentsByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("ListPayments failed", "event_id", event.ID, "error", err)
		return nil, toConnectError(err)
	}
	participants, err := s.store.ListParticipantsByEvent(ctx, event.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	idx := models.IndexParticipants(participants)
	out := make([]*api.Payment, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentToAPI(p, idx))
	}

	s.logger.Info("ListPayments successful", "event_id", event.ID, "count", len(out))
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out}), nil
}
