package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

const launchesSchema = `
    CREATE TABLE launches (
        row_id INTEGER PRIMARY KEY,
        flight_number INTEGER,
        launch_site TEXT NOT NULL,
        payload_mass_kg REAL NOT NULL,
        booster_version TEXT,
        booster_version_category TEXT,
        class INTEGER NOT NULL
    );
    CREATE INDEX launches_site ON launches (launch_site);
    CREATE INDEX launches_payload ON launches (payload_mass_kg);`

// SQLStore mirrors a Dataset into an in-memory SQLite database and answers the
// chart queries with SQL. The table is written once and only read afterwards.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore creates the in-memory database and copies ds into it.
func OpenSQLStore(ctx context.Context, ds *Dataset) (*SQLStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every :memory: connection is its own database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLStore{db: db}
	if err := s.load(ctx, ds); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) load(ctx context.Context, ds *Dataset) error {
	if _, err := s.db.ExecContext(ctx, launchesSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO launches (row_id, flight_number, launch_site, payload_mass_kg, booster_version, booster_version_category, class)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range ds.records {
		if _, err := stmt.ExecContext(ctx, i, r.FlightNumber, r.LaunchSite, r.PayloadMassKg, r.BoosterVersion, r.BoosterVersionCategory, r.Class); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) SuccessesBySite(ctx context.Context) ([]Slice, error) {
	return s.querySlices(ctx, `
        SELECT launch_site, SUM(class)
        FROM launches
        GROUP BY launch_site
        ORDER BY MIN(row_id)`)
}

func (s *SQLStore) OutcomesAtSite(ctx context.Context, site string) ([]Slice, error) {
	return s.querySlices(ctx, `
        SELECT CASE WHEN class = 1 THEN 'Success' ELSE 'Failure' END AS outcome, SUM(class + 1)
        FROM launches
        WHERE launch_site = ?
        GROUP BY outcome
        ORDER BY MIN(row_id)`, site)
}

func (s *SQLStore) PayloadWindow(ctx context.Context, lo, hi float64, site string) ([]LaunchRecord, error) {
	query := `
        SELECT flight_number, launch_site, payload_mass_kg, booster_version, booster_version_category, class
        FROM launches
        WHERE payload_mass_kg >= ? AND payload_mass_kg <= ?`
	args := []any{lo, hi}
	if site != AllSites {
		query += ` AND launch_site = ?`
		args = append(args, site)
	}
	query += ` ORDER BY row_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LaunchRecord
	for rows.Next() {
		var r LaunchRecord
		if err := rows.Scan(&r.FlightNumber, &r.LaunchSite, &r.PayloadMassKg, &r.BoosterVersion, &r.BoosterVersionCategory, &r.Class); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) querySlices(ctx context.Context, query string, args ...any) ([]Slice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Slice
	for rows.Next() {
		var sl Slice
		if err := rows.Scan(&sl.Label, &sl.Value); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}
