package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"weather-history/internal/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// Fixed width so that text ordering matches time ordering.
	timestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

var schemas = map[string][]string{
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS search_queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_text TEXT NOT NULL,
			resolved_name TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			date_start TEXT,
			date_end TEXT,
			label TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS weather_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query_id INTEGER NOT NULL REFERENCES search_queries(id) ON DELETE CASCADE,
			current_json TEXT NOT NULL,
			forecast_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_query ON weather_snapshots(query_id, created_at)`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS search_queries (
			id BIGSERIAL PRIMARY KEY,
			input_text TEXT NOT NULL,
			resolved_name TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			date_start TEXT,
			date_end TEXT,
			label TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS weather_snapshots (
			id BIGSERIAL PRIMARY KEY,
			query_id BIGINT NOT NULL REFERENCES search_queries(id) ON DELETE CASCADE,
			current_json TEXT NOT NULL,
			forecast_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_query ON weather_snapshots(query_id, created_at)`,
	},
}

// SQLStore implements Store on database/sql for SQLite (modernc.org/sqlite,
// pure Go) and PostgreSQL (lib/pq). Queries are written with ? placeholders
// and rebound per driver.
type SQLStore struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to the database and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	ddl, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// one writer keeps SQLite free of "database is locked" errors
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &SQLStore{
		db:     db,
		driver: driver,
		now:    time.Now,
	}, nil
}

// rebind turns ? placeholders into $1, $2, ... for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) timestamp() (time.Time, string) {
	t := s.now().UTC()
	return t, t.Format(timestampLayout)
}

func (s *SQLStore) CreateSearch(ctx context.Context, q *models.SearchQuery, snap *models.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	createdAt, ts := s.timestamp()

	err = tx.QueryRowContext(ctx, s.rebind(`INSERT INTO search_queries
		(input_text, resolved_name, lat, lon, date_start, date_end, label, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		q.InputText, q.ResolvedName, q.Latitude, q.Longitude,
		nullString(q.DateStart), nullString(q.DateEnd), nullString(q.Label), ts,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("insert search: %w", err)
	}
	q.CreatedAt = createdAt

	snap.QueryID = q.ID
	if err = s.insertSnapshot(ctx, tx, snap); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) UpdateSearch(ctx context.Context, q *models.SearchQuery, snap *models.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, s.rebind(`UPDATE search_queries
		SET input_text = ?, resolved_name = ?, lat = ?, lon = ?, date_start = ?, date_end = ?, label = ?
		WHERE id = ?`),
		q.InputText, q.ResolvedName, q.Latitude, q.Longitude,
		nullString(q.DateStart), nullString(q.DateEnd), nullString(q.Label), q.ID,
	)
	if err != nil {
		return fmt.Errorf("update search %d: %w", q.ID, err)
	}
	if err = expectOneRow(res, q.ID); err != nil {
		return err
	}

	snap.QueryID = q.ID
	if err = s.insertSnapshot(ctx, tx, snap); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) AppendSnapshot(ctx context.Context, snap *models.Snapshot) error {
	if _, err := s.GetSearch(ctx, snap.QueryID); err != nil {
		return err
	}
	return s.insertSnapshot(ctx, s.db, snap)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLStore) insertSnapshot(ctx context.Context, db queryRower, snap *models.Snapshot) error {
	current, err := json.Marshal(snap.Current)
	if err != nil {
		return fmt.Errorf("encode current conditions: %w", err)
	}

	forecast := snap.Forecast
	if forecast == nil {
		forecast = models.DailySeries{}
	}
	daily, err := json.Marshal(forecast)
	if err != nil {
		return fmt.Errorf("encode forecast: %w", err)
	}

	createdAt, ts := s.timestamp()

	err = db.QueryRowContext(ctx, s.rebind(`INSERT INTO weather_snapshots
		(query_id, current_json, forecast_json, created_at)
		VALUES (?, ?, ?, ?) RETURNING id`),
		snap.QueryID, string(current), string(daily), ts,
	).Scan(&snap.ID)
	if err != nil {
		return fmt.Errorf("insert snapshot for search %d: %w", snap.QueryID, err)
	}
	snap.CreatedAt = createdAt

	return nil
}

const searchColumns = `id, input_text, resolved_name, lat, lon, date_start, date_end, label, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSearch(row scanner) (*models.SearchQuery, error) {
	var (
		q                       models.SearchQuery
		dateStart, dateEnd, lbl sql.NullString
		createdAt               string
	)
	err := row.Scan(&q.ID, &q.InputText, &q.ResolvedName, &q.Latitude, &q.Longitude,
		&dateStart, &dateEnd, &lbl, &createdAt)
	if err != nil {
		return nil, err
	}

	q.DateStart = stringPtr(dateStart)
	q.DateEnd = stringPtr(dateEnd)
	q.Label = stringPtr(lbl)
	q.CreatedAt, err = time.Parse(timestampLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of search %d: %w", q.ID, err)
	}

	return &q, nil
}

func (s *SQLStore) GetSearch(ctx context.Context, id int64) (*models.SearchQuery, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+searchColumns+` FROM search_queries WHERE id = ?`), id)

	q, err := scanSearch(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("search %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListSearches returns searches newest first.
func (s *SQLStore) ListSearches(ctx context.Context, limit int) ([]models.SearchQuery, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT `+searchColumns+` FROM search_queries
		ORDER BY created_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SearchQuery, 0)
	for rows.Next() {
		q, err := scanSearch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (s *SQLStore) LatestSnapshot(ctx context.Context, queryID int64) (*models.Snapshot, error) {
	var (
		snap              models.Snapshot
		current, forecast string
		createdAt         string
	)
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, query_id, current_json, forecast_json, created_at
		FROM weather_snapshots WHERE query_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`), queryID,
	).Scan(&snap.ID, &snap.QueryID, &current, &forecast, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot for search %d: %w", queryID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(current), &snap.Current); err != nil {
		return nil, fmt.Errorf("decode current conditions of snapshot %d: %w", snap.ID, err)
	}
	if err := json.Unmarshal([]byte(forecast), &snap.Forecast); err != nil {
		return nil, fmt.Errorf("decode forecast of snapshot %d: %w", snap.ID, err)
	}
	if snap.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at of snapshot %d: %w", snap.ID, err)
	}

	return &snap, nil
}

// DeleteSearch removes the search and every snapshot taken for it.
func (s *SQLStore) DeleteSearch(ctx context.Context, id int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, s.rebind(`DELETE FROM weather_snapshots WHERE query_id = ?`), id); err != nil {
		return fmt.Errorf("delete snapshots of search %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM search_queries WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete search %d: %w", id, err)
	}
	if err = expectOneRow(res, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("search %d: %w", id, ErrNotFound)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
