package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/evcraddock/rentdesk/internal/settings"
)

// Settings returns the settings singleton, or the defaults when none have
// been saved.
func (s *Store) Settings(ctx context.Context) (json.RawMessage, error) {
	return loadSettings(ctx, s.db)
}

func loadSettings(ctx context.Context, q querier) (json.RawMessage, error) {
	var data string
	err := q.QueryRowContext(ctx, "SELECT data FROM settings WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		defaults, err := json.Marshal(settings.Defaults())
		if err != nil {
			return nil, fmt.Errorf("encoding default settings: %w", err)
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	return json.RawMessage(data), nil
}

// PatchSettings merges patch into the settings singleton, creating it from
// the defaults on first write.
func (s *Store) PatchSettings(ctx context.Context, patch json.RawMessage) (json.RawMessage, error) {
	changes, err := object(patch)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning settings update: %w", err)
	}
	defer rollback(tx)

	current, err := loadSettings(ctx, tx)
	if err != nil {
		return nil, err
	}
	fields, err := object(current)
	if err != nil {
		return nil, fmt.Errorf("decoding stored settings: %w", err)
	}
	for k, v := range changes {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	fields["id"] = json.RawMessage("1")
	merged := encode(fields)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settings (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		merged,
	); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing settings update: %w", err)
	}
	return json.RawMessage(merged), nil
}
