// Package store provides the deduplicated canonical job store.
//
// The store is a single table keyed by a surrogate row id, with a uniqueness
// constraint on source_url. Inserts are idempotent: a record whose source_url
// already exists is skipped without touching the stored row. The default
// backend is a SQLite file; a postgres:// DSN selects the pgx driver instead.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/sohia/remote-work-tracker/internal/types"
)

// TableName is the canonical table holding all observed job postings.
const TableName = "remote_jobs"

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// Store wraps a lazily-opened database connection. Every public operation
// (re)connects transparently if the prior connection was torn down.
type Store struct {
	dsn     string
	dialect dialect
	db      *sql.DB
}

// Open prepares a store for the given DSN without connecting. A
// postgres:// or postgresql:// DSN selects the Postgres backend; anything
// else is treated as a SQLite file path.
func Open(dsn string) *Store {
	d := dialectSQLite
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		d = dialectPostgres
	}
	return &Store{dsn: dsn, dialect: d}
}

// conn returns the live connection, establishing it if necessary.
func (s *Store) conn(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	driver := "sqlite"
	if s.dialect == dialectPostgres {
		driver = "pgx"
	}

	db, err := sql.Open(driver, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if s.dialect == dialectSQLite {
		// One writer, one connection: a shared pool of separate SQLite
		// handles serves no purpose for a sequential batch pipeline.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s.db = db
	return s.db, nil
}

// Close tears down the connection. Safe to call repeatedly or before any
// operation has connected.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// EnsureSchema creates the canonical table if it does not exist. Safe to
// call on every process start; failure here is the one condition callers
// should treat as fatal, since operating against an unknown schema is worse
// than not operating at all.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, s.schemaDDL()); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// InsertReport describes the outcome of one batch insert. Skipped rows are
// expected duplicates, not failures.
type InsertReport struct {
	Attempted int
	Inserted  int
	Skipped   int
}

// InsertBatch writes the eligible new records inside a single transaction.
// Records whose source_url is already stored are skipped per-row without
// modifying the existing row. Any other failure rolls the whole batch back:
// either all eligible rows land or none do.
func (s *Store) InsertBatch(ctx context.Context, records []types.JobRecord) (InsertReport, error) {
	report := InsertReport{Attempted: len(records)}
	if len(records) == 0 {
		slog.InfoContext(ctx, "no records to insert")
		return report, nil
	}

	db, err := s.conn(ctx)
	if err != nil {
		return report, fmt.Errorf("insert batch: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("insert batch: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt := s.insertSQL()
	for _, rec := range records {
		res, err := tx.ExecContext(ctx, stmt,
			rec.ID,
			rec.JobTitle,
			rec.CompanyName,
			rec.PublicationDate,
			rec.JobType,
			rec.Category,
			rec.CandidateRequiredLocation,
			rec.SalaryRange,
			rec.JobDescription,
			rec.SourceURL,
			rec.CompanyLogo,
			rec.JobBoard,
			rec.IngestionTimestamp,
		)
		if err != nil {
			return report, fmt.Errorf("insert batch: %s: %w", rec.SourceURL, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return report, fmt.Errorf("insert batch: rows affected: %w", err)
		}
		report.Inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("insert batch: commit: %w", err)
	}

	report.Skipped = report.Attempted - report.Inserted
	return report, nil
}

// FetchAll returns every stored record in storage order, column-complete.
func (s *Store) FetchAll(ctx context.Context) ([]types.JobRecord, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch all: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY row_id",
		strings.Join(types.Columns, ", "), TableName,
	)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch all: %w", err)
	}
	defer rows.Close()

	var records []types.JobRecord
	for rows.Next() {
		var (
			rec       types.JobRecord
			id        sql.NullInt64
			pubDate   sql.NullString
			jobType   sql.NullString
			category  sql.NullString
			location  sql.NullString
			salary    sql.NullString
			desc      sql.NullString
			logo      sql.NullString
			ingestion sql.NullString
		)
		err := rows.Scan(
			&id, &rec.JobTitle, &rec.CompanyName, &pubDate, &jobType,
			&category, &location, &salary, &desc, &rec.SourceURL,
			&logo, &rec.JobBoard, &ingestion,
		)
		if err != nil {
			return nil, fmt.Errorf("fetch all: scan: %w", err)
		}
		if id.Valid {
			rec.ID = &id.Int64
		}
		rec.PublicationDate = nullableString(pubDate)
		rec.JobType = nullableString(jobType)
		rec.Category = nullableString(category)
		rec.CandidateRequiredLocation = nullableString(location)
		rec.SalaryRange = nullableString(salary)
		rec.JobDescription = nullableString(desc)
		rec.CompanyLogo = nullableString(logo)
		if ingestion.Valid {
			rec.IngestionTimestamp = ingestion.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch all: %w", err)
	}
	return records, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
