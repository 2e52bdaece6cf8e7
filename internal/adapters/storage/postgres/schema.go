package postgres

import (
	"context"
	"database/sql"
)

// Schema es el DDL del servicio. El indice unico sobre el chip es el cierre
// real de la ventana de carrera del pre-chequeo check-then-create.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	phone         TEXT NOT NULL DEFAULT '',
	address       TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'owner',
	password_hash TEXT NOT NULL,
	password_salt TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_uq ON users (email);

CREATE TABLE IF NOT EXISTS pets (
	id          TEXT PRIMARY KEY,
	internal_id TEXT NOT NULL,
	owner_id    TEXT NOT NULL,
	name        TEXT NOT NULL,
	species     TEXT NOT NULL,
	breed       TEXT NOT NULL,
	age         INTEGER NOT NULL CHECK (age >= 0),
	weight      DOUBLE PRECISION NOT NULL CHECK (weight > 0),
	sex         TEXT NOT NULL DEFAULT 'unspecified',
	chip        TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	photo       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS pets_chip_uq ON pets (chip);
CREATE UNIQUE INDEX IF NOT EXISTS pets_internal_id_uq ON pets (internal_id);
CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_id);

CREATE TABLE IF NOT EXISTS history_entries (
	id          TEXT PRIMARY KEY,
	pet_id      TEXT NOT NULL REFERENCES pets (id),
	entry_date  DATE NOT NULL,
	entry_type  TEXT NOT NULL,
	description TEXT NOT NULL,
	vet         TEXT NOT NULL DEFAULT '',
	clinic      TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS history_pet_date_idx ON history_entries (pet_id, entry_date DESC);
`

// Migrate aplica el schema idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
