package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    icon       TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id                  INTEGER PRIMARY KEY,
    name                TEXT NOT NULL,
    category            TEXT NOT NULL,
    description         TEXT,
    expiry_date         DATETIME,
    alert_email         TEXT,
    photo_path          TEXT,
    discontinued        INTEGER NOT NULL DEFAULT 0,
    replacement_item_id INTEGER REFERENCES items(id) ON DELETE SET NULL,
    created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ambulance_posts (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    location   TEXT,
    active     INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cabinets (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    abbreviation TEXT NOT NULL CHECK (length(abbreviation) <= 3),
    color        TEXT,
    description  TEXT,
    location     TEXT,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS drawers (
    id         INTEGER PRIMARY KEY,
    cabinet_id INTEGER NOT NULL REFERENCES cabinets(id) ON DELETE CASCADE,
    name       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cabinet_locations (
    id           INTEGER PRIMARY KEY,
    cabinet_id   INTEGER NOT NULL REFERENCES cabinets(id) ON DELETE CASCADE,
    post_id      TEXT NOT NULL REFERENCES ambulance_posts(id) ON DELETE CASCADE,
    sub_location TEXT
);

CREATE TABLE IF NOT EXISTS post_contacts (
    id         INTEGER PRIMARY KEY,
    post_id    TEXT NOT NULL REFERENCES ambulance_posts(id) ON DELETE CASCADE,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    department TEXT,
    active     INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS item_locations (
    id                INTEGER PRIMARY KEY,
    item_id           INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    post_id           TEXT NOT NULL REFERENCES ambulance_posts(id) ON DELETE CASCADE,
    cabinet_id        INTEGER NOT NULL REFERENCES cabinets(id),
    drawer_id         INTEGER REFERENCES drawers(id) ON DELETE SET NULL,
    contact_id        INTEGER REFERENCES post_contacts(id) ON DELETE SET NULL,
    stock_status      TEXT NOT NULL DEFAULT 'in-stock'
                      CHECK (stock_status IN ('in-stock', 'low-stock', 'out-of-stock')),
    status_changed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS supply_requests (
    id          INTEGER PRIMARY KEY,
    item_id     INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    location_id INTEGER REFERENCES item_locations(id) ON DELETE SET NULL,
    recipient   TEXT NOT NULL,
    urgent      INTEGER NOT NULL DEFAULT 0,
    sent_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS post_cabinet_order (
    post_id    TEXT NOT NULL REFERENCES ambulance_posts(id) ON DELETE CASCADE,
    cabinet_id INTEGER NOT NULL REFERENCES cabinets(id) ON DELETE CASCADE,
    sort_order INTEGER NOT NULL,
    PRIMARY KEY (post_id, cabinet_id)
);

CREATE TABLE IF NOT EXISTS objects (
    id         TEXT PRIMARY KEY,
    data       BLOB,
    mime       TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
