package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/eventbudget/internal/models"
	"github.com/mmynk/eventbudget/internal/storage"
)

const paymentColumns = `id, event_id, amount, payer_name, participant_id, note, created_at`

func scanPayment(row rowScanner) (*models.Payment, error) {
	payment := &models.Payment{}
	var participantID sql.NullString
	if err := row.Scan(&payment.ID, &payment.EventID, &payment.Amount, &payment.PayerName,
		&participantID, &payment.Note, &payment.CreatedAt); err != nil {
		return nil, err
	}
	payment.ParticipantID = participantID.String
	return payment, nil
}

// CreatePayment persists a new payment to the database.
func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.exec(ctx, s.db,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.EventID, payment.Amount, payment.PayerName,
		nullable(payment.ParticipantID), payment.Note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// GetPayment retrieves a payment by ID.
func (s *Store) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := scanPayment(s.queryRow(ctx, s.db,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, paymentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// ListPaymentsByEvent retrieves all payments for an event.
func (s *Store) ListPaymentsByEvent(ctx context.Context, eventID string) ([]*models.Payment, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT `+paymentColumns+` FROM payments WHERE event_id = ? ORDER BY created_at, id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by event: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// UpdatePayment updates the amount, payer, participant link and note of a payment.
func (s *Store) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	res, err := s.exec(ctx, s.db,
		`UPDATE payments SET amount = ?, payer_name = ?, participant_id = ?, note = ? WHERE id = ?`,
		payment.Amount, payment.PayerName, nullable(payment.ParticipantID), payment.Note, payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return expectOne(res, "payment", payment.ID)
}

// DeletePayment removes a payment by ID.
func (s *Store) DeletePayment(ctx context.Context, paymentID string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM payments WHERE id = ?`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return expectOne(res, "payment", paymentID)
}
