package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/anicoll/fusionbridge/internal/pkg/model"
)

// Database keeps a rolling history of readings in Postgres.
type Database struct {
	conn *pgx.Conn
}

func New(ctx context.Context, conn *pgx.Conn) (*Database, error) {
	const createReadingsTableSQL = `
CREATE TABLE IF NOT EXISTS Readings (
    id SERIAL PRIMARY KEY,
    time_stamp TIMESTAMP WITH TIME ZONE NOT NULL,
    identifier TEXT NOT NULL,
    name TEXT NOT NULL,
    slug TEXT NOT NULL,
    value TEXT NOT NULL,
    unit_of_measurement TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_identifier ON Readings (identifier);
CREATE INDEX IF NOT EXISTS idx_readings_timestamp ON Readings (time_stamp);
`
	if _, err := conn.Exec(ctx, createReadingsTableSQL); err != nil {
		return nil, err
	}

	db := &Database{conn: conn}
	if err := db.Cleanup(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func (d *Database) Write(ctx context.Context, readings []model.Reading) error {
	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, reading := range readings {
		if _, err := tx.Exec(ctx, `
			INSERT INTO Readings (time_stamp, identifier, name, slug, value, unit_of_measurement)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, reading.Timestamp, reading.Identifier, reading.Name, reading.Slug, reading.Value, reading.Unit); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Cleanup removes readings older than eight days.
func (d *Database) Cleanup(ctx context.Context) error {
	if _, err := d.conn.Exec(ctx, "DELETE FROM Readings WHERE time_stamp < $1", time.Now().AddDate(0, 0, -8)); err != nil {
		return err
	}
	return nil
}

func (d *Database) Close(ctx context.Context) error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close(ctx)
}
