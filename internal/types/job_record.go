// Package types defines the canonical data shapes shared across the pipeline.
package types

import (
	"github.com/go-playground/validator/v10"
)

// RawRecord is an untyped field bag produced by a source collector.
// Keys use the source vocabulary ("Job Title", "Source URL", ...); values may
// be strings, numbers, or missing entirely.
type RawRecord map[string]any

// JobRecord is the canonical job posting all sources normalize into.
// Optional fields are pointers; nil means the source had no usable value.
// An empty string is never a valid stored value for an optional field.
type JobRecord struct {
	ID                        *int64  `json:"id"`
	JobTitle                  string  `json:"job_title" validate:"required"`
	CompanyName               string  `json:"company_name" validate:"required"`
	PublicationDate           *string `json:"publication_date"`
	JobType                   *string `json:"job_type"`
	Category                  *string `json:"category"`
	CandidateRequiredLocation *string `json:"candidate_required_location"`
	SalaryRange               *string `json:"salary_range"`
	JobDescription            *string `json:"job_description"`
	SourceURL                 string  `json:"source_url" validate:"required,url"`
	CompanyLogo               *string `json:"company_logo"`
	JobBoard                  string  `json:"job_board" validate:"required"`
	IngestionTimestamp        string  `json:"ingestion_timestamp"`
}

// Columns is the canonical column order used by the store schema and every
// CSV export header.
var Columns = []string{
	"id",
	"job_title",
	"company_name",
	"publication_date",
	"job_type",
	"category",
	"candidate_required_location",
	"salary_range",
	"job_description",
	"source_url",
	"company_logo",
	"job_board",
	"ingestion_timestamp",
}

// Validate checks that the record satisfies the non-null invariants
// (job_title, company_name, source_url, job_board). Records failing
// validation must not reach the store.
func (r *JobRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
