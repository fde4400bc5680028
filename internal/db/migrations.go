package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at the
// end.
var migrations = []string{
	// Migration 1: speed up the cabinet summary and the per-item location
	// lookups, both of which the dashboard polls.
	`CREATE INDEX IF NOT EXISTS idx_item_locations_cabinet
	     ON item_locations(cabinet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_item_locations_item
	     ON item_locations(item_id)`,

	// Migration 2: the "already sent" affordance reads the newest receipt
	// per location.
	`CREATE INDEX IF NOT EXISTS idx_supply_requests_location
	     ON supply_requests(location_id, sent_at)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
