package models

import "github.com/shopspring/decimal"

// Payment records money paid towards an event.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// EventID is the event this payment belongs to.
	EventID string

	// Amount paid; at least 0.01.
	Amount decimal.Decimal

	// PayerName is who paid. Defaults to the linked participant's name.
	PayerName string

	// ParticipantID optionally links the payment to a participant of the event.
	ParticipantID string

	// Note is an optional description.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
