package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateDocuments, downCreateDocuments)
}

func upCreateDocuments(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL
	);
	`)
	if err != nil {
		return err
	}

	for _, table := range []string{"persons", "fine_templates", "fines"} {
		_, err = tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+table+` (
			team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			doc JSONB NOT NULL,
			PRIMARY KEY (team_id, id)
		);
		`)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL
	);
	`)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS identities (
		subject TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS invitations (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		person_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_fines_person ON fines(team_id, (doc->>'personId'));
	`)
	return err
}

func downCreateDocuments(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"invitations", "identities", "users", "fines", "fine_templates", "persons", "teams"} {
		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table+` CASCADE;`); err != nil {
			return err
		}
	}
	return nil
}
