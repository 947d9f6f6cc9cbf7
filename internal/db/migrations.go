package db

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// Table returns the table holding records of resource name.
func Table(name resource.Name) string {
	return `"` + string(name) + `"`
}

// recordTable is the layout shared by every collection: the record itself
// is stored as a JSON document.
const recordTable = `CREATE TABLE IF NOT EXISTS %s (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		data       TEXT     NOT NULL CHECK (json_valid(data)),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

// migrations is an ordered list of SQL statements to run.
var migrations = func() []string {
	var out []string
	for _, name := range resource.Names() {
		if name == resource.Settings {
			continue
		}
		out = append(out, fmt.Sprintf(recordTable, Table(name)))
	}
	return append(out,
		`CREATE TABLE IF NOT EXISTS settings (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		data       TEXT     NOT NULL CHECK (json_valid(data)),
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	)
}()

// foreignKeys are the reference fields looked up when planning cascading
// deletes.
var foreignKeys = []struct {
	table resource.Name
	field string
}{
	{resource.Leases, "tenantId"},
	{resource.Leases, "propertyId"},
	{resource.Payments, "tenantId"},
	{resource.Payments, "leaseId"},
	{resource.LeaseDocuments, "leaseId"},
	{resource.MaintenanceRequests, "propertyId"},
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	for _, fk := range foreignKeys {
		if err := addIndexIfNotExists(db, fk.table, fk.field); err != nil {
			return fmt.Errorf("indexing %s.%s: %w", fk.table, fk.field, err)
		}
	}

	return nil
}

// addIndexIfNotExists adds an expression index on a JSON field if it
// doesn't already exist.
func addIndexIfNotExists(db *sql.DB, table resource.Name, field string) error {
	index := fmt.Sprintf("%s_%s", table, field)

	rows, err := db.Query(fmt.Sprintf("PRAGMA index_list(%s)", Table(table)))
	if err != nil {
		return fmt.Errorf("checking index list: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			slog.Warn("failed to close rows", "error", cerr)
		}
	}()

	for rows.Next() {
		var seq int
		var name, origin string
		var unique, partial int
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return fmt.Errorf("scanning index info: %w", err)
		}
		if name == index {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating indexes: %w", err)
	}

	_, err = db.Exec(fmt.Sprintf(`CREATE INDEX %q ON %s (json_extract(data, '$.%s'))`, index, Table(table), field))
	return err
}
