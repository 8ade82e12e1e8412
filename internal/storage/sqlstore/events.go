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

const eventColumns = `id, name, description, adult_budget, child_budget, general_costs, creator_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(&event.ID, &event.Name, &event.Description,
		&event.AdultBudget, &event.ChildBudget, &event.GeneralCosts,
		&event.CreatorID, &event.CreatedAt)
	return event, err
}

// CreateEvent persists a new event to the database.
func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	// Generate ID if not set
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	_, err := s.exec(ctx, s.db,
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, event.Description,
		event.AdultBudget, event.ChildBudget, event.GeneralCosts,
		event.CreatorID, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// GetEvent retrieves an event by ID.
func (s *Store) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := scanEvent(s.queryRow(ctx, s.db,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, eventID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ListEventsByCreator retrieves all events created by a user.
func (s *Store) ListEventsByCreator(ctx context.Context, creatorID string) ([]*models.Event, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT `+eventColumns+` FROM events WHERE creator_id = ? ORDER BY created_at DESC, id`,
		creatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by creator: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// UpdateEvent updates the mutable fields of an event.
func (s *Store) UpdateEvent(ctx context.Context, event *models.Event) error {
	res, err := s.exec(ctx, s.db,
		`UPDATE events SET name = ?, description = ?, adult_budget = ?, child_budget = ?, general_costs = ?
		 WHERE id = ?`,
		event.Name, event.Description, event.AdultBudget, event.ChildBudget, event.GeneralCosts,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return expectOne(res, "event", event.ID)
}

// DeleteEvent removes an event. Participants and payments cascade.
func (s *Store) DeleteEvent(ctx context.Context, eventID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		// Break pairings first so the self-reference never blocks the cascade.
		if _, err := s.exec(ctx, tx,
			`UPDATE participants SET partner_id = NULL, is_couple = 0 WHERE event_id = ?`, eventID); err != nil {
			return fmt.Errorf("failed to release pairings: %w", err)
		}

		res, err := s.exec(ctx, tx, `DELETE FROM events WHERE id = ?`, eventID)
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return expectOne(res, "event", eventID)
	})
}
