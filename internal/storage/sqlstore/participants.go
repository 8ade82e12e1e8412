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

const participantColumns = `id, event_id, name, type, custom_budget, is_couple, partner_id, user_id`

func scanParticipant(row rowScanner) (*models.Participant, error) {
	p := &models.Participant{}
	var (
		couple    int64
		partnerID sql.NullString
		userID    sql.NullString
	)
	if err := row.Scan(&p.ID, &p.EventID, &p.Name, &p.Type, &p.CustomBudget,
		&couple, &partnerID, &userID); err != nil {
		return nil, err
	}
	p.IsCouple = couple != 0
	p.PartnerID = partnerID.String
	p.UserID = userID.String
	return p, nil
}

// CreateParticipant persists a new participant and its pairing.
func (s *Store) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx,
			`INSERT INTO participants (id, event_id, name, type, custom_budget, is_couple, partner_id, user_id, created_at)
			 VALUES (?, ?, ?, ?, ?, 0, NULL, ?, ?)`,
			p.ID, p.EventID, p.Name, string(p.Type), p.CustomBudget, nullable(p.UserID), time.Now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}

		if p.PartnerID == "" {
			return nil
		}
		return s.pair(ctx, tx, p.EventID, p.ID, p.PartnerID)
	})
	if err != nil {
		return err
	}

	p.IsCouple = p.PartnerID != ""
	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *Store) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	return s.getParticipant(ctx, s.db, participantID)
}

func (s *Store) getParticipant(ctx context.Context, q execer, participantID string) (*models.Participant, error) {
	p, err := scanParticipant(s.queryRow(ctx, q,
		`SELECT `+participantColumns+` FROM participants WHERE id = ?`, participantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// ListParticipantsByEvent retrieves all participants of an event.
func (s *Store) ListParticipantsByEvent(ctx context.Context, eventID string) ([]*models.Participant, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT `+participantColumns+` FROM participants WHERE event_id = ? ORDER BY created_at, name, id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// UpdateParticipant updates a participant's fields and pairing.
func (s *Store) UpdateParticipant(ctx context.Context, p *models.Participant) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := s.getParticipant(ctx, tx, p.ID)
		if err != nil {
			return err
		}

		if _, err := s.exec(ctx, tx,
			`UPDATE participants SET name = ?, type = ?, custom_budget = ?, user_id = ? WHERE id = ?`,
			p.Name, string(p.Type), p.CustomBudget, nullable(p.UserID), p.ID,
		); err != nil {
			return fmt.Errorf("failed to update participant: %w", err)
		}

		switch {
		case p.PartnerID == current.PartnerID:
			return nil
		case p.PartnerID == "":
			return s.release(ctx, tx, p.ID)
		default:
			return s.pair(ctx, tx, current.EventID, p.ID, p.PartnerID)
		}
	})
	if err != nil {
		return err
	}

	p.IsCouple = p.PartnerID != ""
	return nil
}

// DeleteParticipant removes a participant and releases its partner.
// Payments linked to the participant keep existing without the link.
func (s *Store) DeleteParticipant(ctx context.Context, participantID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.release(ctx, tx, participantID); err != nil {
			return err
		}
		if _, err := s.exec(ctx, tx,
			`UPDATE payments SET participant_id = NULL WHERE participant_id = ?`, participantID); err != nil {
			return fmt.Errorf("failed to detach payments: %w", err)
		}

		res, err := s.exec(ctx, tx, `DELETE FROM participants WHERE id = ?`, participantID)
		if err != nil {
			return fmt.Errorf("failed to delete participant: %w", err)
		}
		return expectOne(res, "participant", participantID)
	})
}

// release breaks the pairing of a participant on both sides.
func (s *Store) release(ctx context.Context, tx *sql.Tx, participantID string) error {
	_, err := s.exec(ctx, tx,
		`UPDATE participants SET partner_id = NULL, is_couple = 0 WHERE id = ? OR partner_id = ?`,
		participantID, participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to release partner of %s: %w", participantID, err)
	}
	return nil
}

// pair links a and b as partners within eventID. Previous partners of
// either side are released first so the relation stays symmetric.
func (s *Store) pair(ctx context.Context, tx *sql.Tx, eventID, a, b string) error {
	if a == b {
		return fmt.Errorf("participant %s cannot be its own partner", a)
	}

	if err := s.release(ctx, tx, a); err != nil {
		return err
	}
	if err := s.release(ctx, tx, b); err != nil {
		return err
	}

	// The partner side goes first: a missing partner or one from another
	// event matches no row and aborts before anything references it.
	link := `UPDATE participants SET partner_id = ?, is_couple = 1 WHERE id = ? AND event_id = ?`
	res, err := s.exec(ctx, tx, link, a, b, eventID)
	if err != nil {
		return fmt.Errorf("failed to link partner %s: %w", b, err)
	}
	if err := expectOne(res, "partner", b); err != nil {
		return err
	}

	res, err = s.exec(ctx, tx, link, b, a, eventID)
	if err != nil {
		return fmt.Errorf("failed to link participant %s: %w", a, err)
	}
	return expectOne(res, "participant", a)
}
