package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

// schema is portable between SQLite and PostgreSQL. Money is stored as
// decimal text, timestamps as Unix seconds and booleans as 0/1 integers.
// Tables are listed in foreign key order.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    adult_budget TEXT NOT NULL,
    child_budget TEXT NOT NULL,
    general_costs TEXT NOT NULL DEFAULT '0',
    creator_id TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    FOREIGN KEY (creator_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    custom_budget TEXT,
    is_couple INTEGER NOT NULL DEFAULT 0,
    partner_id TEXT,
    user_id TEXT,
    created_at BIGINT NOT NULL,
    FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
    FOREIGN KEY (partner_id) REFERENCES participants(id) ON DELETE SET NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    payer_name TEXT NOT NULL,
    participant_id TEXT,
    note TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
    FOREIGN KEY (participant_id) REFERENCES participants(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_events_creator_id ON events(creator_id);
CREATE INDEX IF NOT EXISTS idx_participants_event_id ON participants(event_id);
CREATE INDEX IF NOT EXISTS idx_participants_partner_id ON participants(partner_id);
CREATE INDEX IF NOT EXISTS idx_payments_event_id ON payments(event_id);
`

// schemaStatements splits the schema into individual statements so drivers
// without multi-statement support can apply it.
func schemaStatements() []string {
	var stmts []string
	for _, stmt := range strings.Split(schema, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// Migrate executes the schema setup. Safe to run multiple times.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %.40q: %w", stmt, err)
		}
	}
	return nil
}
