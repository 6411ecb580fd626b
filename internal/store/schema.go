package store

import (
	"fmt"
	"strings"
)

// schemaDDL returns the canonical table definition for the active dialect.
// Columns mirror types.Columns exactly; the surrogate row_id is the primary
// key because source-provided ids are not unique across job boards.
func (s *Store) schemaDDL() string {
	if s.dialect == dialectPostgres {
		return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    row_id                      BIGSERIAL PRIMARY KEY,
    id                          BIGINT,
    job_title                   TEXT NOT NULL,
    company_name                TEXT NOT NULL,
    publication_date            TEXT,
    job_type                    TEXT,
    category                    TEXT,
    candidate_required_location TEXT,
    salary_range                TEXT,
    job_description             TEXT,
    source_url                  TEXT UNIQUE NOT NULL,
    company_logo                TEXT,
    job_board                   TEXT NOT NULL,
    ingestion_timestamp         TEXT NOT NULL DEFAULT now()::text
)`, TableName)
	}
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    row_id                      INTEGER PRIMARY KEY AUTOINCREMENT,
    id                          INTEGER,
    job_title                   TEXT NOT NULL,
    company_name                TEXT NOT NULL,
    publication_date            TEXT,
    job_type                    TEXT,
    category                    TEXT,
    candidate_required_location TEXT,
    salary_range                TEXT,
    job_description             TEXT,
    source_url                  TEXT UNIQUE NOT NULL,
    company_logo                TEXT,
    job_board                   TEXT NOT NULL,
    ingestion_timestamp         TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, TableName)
}

// insertSQL returns the idempotent insert statement. ON CONFLICT DO NOTHING
// is understood by both SQLite and Postgres, so only the placeholder style
// differs between dialects.
func (s *Store) insertSQL() string {
	cols := []string{
		"id", "job_title", "company_name", "publication_date", "job_type",
		"category", "candidate_required_location", "salary_range",
		"job_description", "source_url", "company_logo", "job_board",
		"ingestion_timestamp",
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		if s.dialect == dialectPostgres {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (source_url) DO NOTHING",
		TableName, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)
}
