// Package store is the record repository behind the REST API. Every
// collection is a table of JSON documents; queries filter and sort on
// fields inside the documents.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/evcraddock/rentdesk/internal/db"
	"github.com/evcraddock/rentdesk/internal/resource"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnknownResource is returned for collections the store does not hold.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrInvalidQuery is returned for malformed list queries.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidBody is returned when a write body is not a JSON object.
	ErrInvalidBody = errors.New("invalid body")
)

// Store provides CRUD operations over every collection.
type Store struct {
	db *sql.DB
}

// New creates a store on an opened database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// table returns the quoted table for name, or ErrUnknownResource.
func table(name resource.Name) (string, error) {
	if !resource.Valid(string(name)) || name == resource.Settings {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return db.Table(name), nil
}

// List returns the records of name matching q. Without a sort field records
// come back in insertion order; with one, ties are broken by id.
func (s *Store) List(ctx context.Context, name resource.Name, q resource.Query) ([]json.RawMessage, error) {
	tbl, err := table(name)
	if err != nil {
		return nil, err
	}

	query := "SELECT data FROM " + tbl
	var args []any
	var conditions []string

	fields := make([]string, 0, len(q.Eq))
	for f := range q.Eq {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if !resource.ValidField(f) {
			return nil, fmt.Errorf("%w: filter field %q", ErrInvalidQuery, f)
		}
		conditions = append(conditions, "CAST(json_extract(data, ?) AS TEXT) = ?")
		args = append(args, "$."+f, filterValue(q.Eq[f]))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if q.Sort != "" {
		if !resource.ValidField(q.Sort) {
			return nil, fmt.Errorf("%w: sort field %q", ErrInvalidQuery, q.Sort)
		}
		dir := "ASC"
		if q.Order == resource.Desc {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY json_extract(data, ?) %s, id ASC", dir)
		args = append(args, "$."+q.Sort)
	} else {
		query += " ORDER BY id ASC"
	}

	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", name, err)
	}
	defer closeRows(rows)

	records := []json.RawMessage{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", name, err)
		}
		records = append(records, json.RawMessage(data))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", name, err)
	}

	return records, nil
}

// filterValue maps query string booleans onto SQLite's JSON booleans.
func filterValue(v string) string {
	switch v {
	case "true":
		return "1"
	case "false":
		return "0"
	}
	return v
}

// Get returns one record.
func (s *Store) Get(ctx context.Context, name resource.Name, id int64) (json.RawMessage, error) {
	return get(ctx, s.db, name, id)
}

func get(ctx context.Context, q querier, name resource.Name, id int64) (json.RawMessage, error) {
	tbl, err := table(name)
	if err != nil {
		return nil, err
	}

	var data string
	err = q.QueryRowContext(ctx, "SELECT data FROM "+tbl+" WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s %d: %w", name, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s %d: %w", name, id, err)
	}
	return json.RawMessage(data), nil
}

// Insert stores a new record and returns it with its generated id. Any id
// in body is ignored. Archivable records default to not archived.
func (s *Store) Insert(ctx context.Context, name resource.Name, body json.RawMessage) (json.RawMessage, error) {
	tbl, err := table(name)
	if err != nil {
		return nil, err
	}

	fields, err := object(body)
	if err != nil {
		return nil, err
	}
	delete(fields, "id")
	if _, ok := fields["archived"]; !ok && name.Archivable() {
		fields["archived"] = json.RawMessage("false")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning insert: %w", err)
	}
	defer rollback(tx)

	result, err := tx.ExecContext(ctx, "INSERT INTO "+tbl+" (data) VALUES (?)", encode(fields))
	if err != nil {
		return nil, fmt.Errorf("inserting %s: %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE "+tbl+" SET data = json_set(data, '$.id', id) WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("stamping %s %d: %w", name, id, err)
	}

	saved, err := get(ctx, tx, name, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing insert: %w", err)
	}
	return saved, nil
}

// Patch merges the top-level fields of patch into record id and returns
// the result. The id cannot be changed.
func (s *Store) Patch(ctx context.Context, name resource.Name, id int64, patch json.RawMessage) (json.RawMessage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning patch: %w", err)
	}
	defer rollback(tx)

	merged, err := patchRecord(ctx, tx, name, id, patch)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing patch: %w", err)
	}
	return merged, nil
}

func patchRecord(ctx context.Context, q querier, name resource.Name, id int64, patch json.RawMessage) (json.RawMessage, error) {
	changes, err := object(patch)
	if err != nil {
		return nil, err
	}
	current, err := get(ctx, q, name, id)
	if err != nil {
		return nil, err
	}
	fields, err := object(current)
	if err != nil {
		return nil, fmt.Errorf("decoding stored %s %d: %w", name, id, err)
	}

	for k, v := range changes {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	merged := encode(fields)

	tbl, _ := table(name)
	if _, err := q.ExecContext(ctx,
		"UPDATE "+tbl+" SET data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		merged, id,
	); err != nil {
		return nil, fmt.Errorf("updating %s %d: %w", name, id, err)
	}
	return json.RawMessage(merged), nil
}

// Delete removes record id.
func (s *Store) Delete(ctx context.Context, name resource.Name, id int64) error {
	return deleteRecord(ctx, s.db, name, id)
}

func deleteRecord(ctx context.Context, q querier, name resource.Name, id int64) error {
	tbl, err := table(name)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, "DELETE FROM "+tbl+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", name, id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %d: %w", name, id, ErrNotFound)
	}

	return nil
}

// Batch applies ops in one transaction. Any failure, including a missing
// record, rolls back every op.
func (s *Store) Batch(ctx context.Context, ops []resource.Op) error {
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch: %w", err)
	}
	defer rollback(tx)

	for i, op := range ops {
		switch op.Kind {
		case resource.OpDelete:
			err = deleteRecord(ctx, tx, op.Resource, op.ID)
		case resource.OpPatch:
			_, err = patchRecord(ctx, tx, op.Resource, op.ID, op.Body)
		}
		if err != nil {
			return fmt.Errorf("batch op %d (%s %s): %w", i, op.Kind, op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// Count returns the number of records in name.
func (s *Store) Count(ctx context.Context, name resource.Name) (int, error) {
	tbl, err := table(name)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+tbl).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", name, err)
	}
	return n, nil
}

// object decodes a JSON object into its top-level fields.
func object(data json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidBody)
	}
	return fields, nil
}

// encode marshals fields. Map keys are sorted, so output is stable.
func encode(fields map[string]json.RawMessage) string {
	data, _ := json.Marshal(fields)
	return string(data)
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Warn("failed to roll back transaction", "error", err)
	}
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Warn("failed to close rows", "error", err)
	}
}
