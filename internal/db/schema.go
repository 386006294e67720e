package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Duplicate prevention for classification names, (make, model, year) tuples
// and wishlist pairs lives here as constraints, so concurrent inserts cannot
// race past an application-level existence check.
const schema = `
CREATE TABLE IF NOT EXISTS classification (
    classification_id   INTEGER PRIMARY KEY,
    classification_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS inventory (
    inv_id            INTEGER PRIMARY KEY,
    inv_make          TEXT NOT NULL,
    inv_model         TEXT NOT NULL,
    inv_year          INTEGER NOT NULL CHECK (inv_year BETWEEN 1800 AND 2100),
    inv_description   TEXT NOT NULL,
    inv_image         TEXT NOT NULL DEFAULT '/images/vehicles/no-image.png',
    inv_thumbnail     TEXT NOT NULL DEFAULT '/images/vehicles/no-image-tn.png',
    inv_price         REAL NOT NULL,
    inv_miles         INTEGER NOT NULL CHECK (inv_miles >= 0),
    inv_color         TEXT NOT NULL,
    classification_id INTEGER NOT NULL REFERENCES classification(classification_id),
    inv_photo         BLOB,
    inv_photo_thumb   BLOB,
    inv_photo_mime    TEXT,
    UNIQUE (inv_make, inv_model, inv_year)
);

CREATE TABLE IF NOT EXISTS account (
    account_id        INTEGER PRIMARY KEY,
    account_firstname TEXT NOT NULL,
    account_lastname  TEXT NOT NULL,
    account_email     TEXT NOT NULL UNIQUE,
    password_hash     TEXT NOT NULL,
    account_type      TEXT NOT NULL DEFAULT 'Client' CHECK (account_type IN ('Admin', 'Employee', 'Client')),
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS wishlist (
    account_id INTEGER NOT NULL REFERENCES account(account_id),
    inv_id     INTEGER NOT NULL REFERENCES inventory(inv_id) ON DELETE CASCADE,
    added_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (account_id, inv_id)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
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
