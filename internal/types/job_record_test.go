package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() JobRecord {
	return JobRecord{
		JobTitle:    "Software Engineer",
		CompanyName: "Tech Corp",
		SourceURL:   "https://example.com/jobs/1",
		JobBoard:    "Remotive.com",
	}
}

func TestJobRecord_Validate(t *testing.T) {
	rec := validRecord()
	require.NoError(t, rec.Validate())
}

func TestJobRecord_Validate_MissingRequired(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*JobRecord)
	}{
		{"missing job title", func(r *JobRecord) { r.JobTitle = "" }},
		{"missing company name", func(r *JobRecord) { r.CompanyName = "" }},
		{"missing source URL", func(r *JobRecord) { r.SourceURL = "" }},
		{"missing job board", func(r *JobRecord) { r.JobBoard = "" }},
		{"source URL is not a URL", func(r *JobRecord) { r.SourceURL = "not a url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			assert.Error(t, rec.Validate())
		})
	}
}

func TestJobRecord_OptionalFieldsMayBeNil(t *testing.T) {
	rec := validRecord()
	rec.Category = nil
	rec.SalaryRange = nil
	rec.PublicationDate = nil

	assert.NoError(t, rec.Validate())
}

func TestColumns_Order(t *testing.T) {
	require.Len(t, Columns, 13)
	assert.Equal(t, "id", Columns[0])
	assert.Equal(t, "source_url", Columns[9])
	assert.Equal(t, "ingestion_timestamp", Columns[12])
}
