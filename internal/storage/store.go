// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/eventbudget/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for event budgeting storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID, GetUserByUsername and GetUserByEmail return ErrNotFound
	// when no user matches.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateEvent persists a new event. The ID and CreatedAt fields are
	// populated by the store when empty.
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEvent retrieves an event by its ID.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// ListEventsByCreator returns the events created by the given user, newest first.
	ListEventsByCreator(ctx context.Context, creatorID string) ([]*models.Event, error)

	// UpdateEvent updates the name, description and budgets of an existing event.
	UpdateEvent(ctx context.Context, event *models.Event) error

	// DeleteEvent removes an event together with its participants and payments.
	DeleteEvent(ctx context.Context, eventID string) error

	// CreateParticipant persists a new participant. When PartnerID is set,
	// both sides of the pairing are written in the same transaction and any
	// previous partner of the new partner is released.
	CreateParticipant(ctx context.Context, participant *models.Participant) error

	// GetParticipant retrieves a participant by its ID.
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)

	// ListParticipantsByEvent returns all participants of an event.
	ListParticipantsByEvent(ctx context.Context, eventID string) ([]*models.Participant, error)

	// UpdateParticipant updates a participant and re-pairs it atomically:
	// an empty PartnerID breaks an existing pairing on both sides.
	UpdateParticipant(ctx context.Context, participant *models.Participant) error

	// DeleteParticipant removes a participant, releasing its partner and
	// detaching its payments.
	DeleteParticipant(ctx context.Context, participantID string) error

	// CreatePayment persists a new payment.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment by its ID.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// ListPaymentsByEvent returns the payments of an event, oldest first.
	ListPaymentsByEvent(ctx context.Context, eventID string) ([]*models.Payment, error)

	// UpdatePayment updates an existing payment.
	UpdatePayment(ctx context.Context, payment *models.Payment) error

	// DeletePayment removes a payment by ID.
	DeletePayment(ctx context.Context, paymentID string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
