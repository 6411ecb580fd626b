package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohia/remote-work-tracker/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := Open(filepath.Join(t.TempDir(), "remote_jobs.db"))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func sampleRecord(url string) types.JobRecord {
	return types.JobRecord{
		ID:                        int64Ptr(1),
		JobTitle:                  "Software Engineer",
		CompanyName:               "Tech Corp",
		PublicationDate:           strPtr("2025-10-15T10:00:00+00:00"),
		JobType:                   strPtr("full_time"),
		Category:                  strPtr("Software Development"),
		CandidateRequiredLocation: strPtr("Worldwide"),
		SalaryRange:               strPtr("$80,000 - $120,000"),
		JobDescription:            strPtr("Develop and maintain software."),
		SourceURL:                 url,
		CompanyLogo:               strPtr("http://example.com/logo.png"),
		JobBoard:                  "ExampleJobs",
		IngestionTimestamp:        "2025-10-18T12:00:00Z",
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureSchema(context.Background()))
	require.NoError(t, s.EnsureSchema(context.Background()))
}

func TestInsertBatch_AndFetchAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []types.JobRecord{
		sampleRecord("http://example.com/job1"),
		sampleRecord("http://example.com/job2"),
	}

	report, err := s.InsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 0, report.Skipped)

	records, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "http://example.com/job1", records[0].SourceURL)
	assert.Equal(t, "http://example.com/job2", records[1].SourceURL)
}

func TestInsertBatch_IdempotentReplay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []types.JobRecord{
		sampleRecord("http://example.com/job1"),
		sampleRecord("http://example.com/job2"),
	}

	first, err := s.InsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)

	second, err := s.InsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Attempted)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)

	records, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2, "replaying a batch must not grow the store")
}

func TestInsertBatch_DuplicateKeepsFirstContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	original := sampleRecord("http://example.com/job1")
	_, err := s.InsertBatch(ctx, []types.JobRecord{original})
	require.NoError(t, err)

	changed := sampleRecord("http://example.com/job1")
	changed.JobTitle = "Principal Engineer"
	changed.CompanyName = "Other Corp"
	changed.IngestionTimestamp = "2025-12-01T00:00:00Z"

	report, err := s.InsertBatch(ctx, []types.JobRecord{changed})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 1, report.Skipped)

	records, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Software Engineer", records[0].JobTitle)
	assert.Equal(t, "Tech Corp", records[0].CompanyName)
	assert.Equal(t, "2025-10-18T12:00:00Z", records[0].IngestionTimestamp,
		"ingestion timestamp must not be overwritten on duplicate skip")
}

func TestInsertBatch_MixedNewAndDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertBatch(ctx, []types.JobRecord{sampleRecord("http://example.com/job1")})
	require.NoError(t, err)

	report, err := s.InsertBatch(ctx, []types.JobRecord{
		sampleRecord("http://example.com/job1"),
		sampleRecord("http://example.com/job3"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
}

func TestInsertBatch_EmptyIsNoOp(t *testing.T) {
	s := newTestStore(t)

	report, err := s.InsertBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, InsertReport{}, report)
}

func TestFetchAll_NullableFieldsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := types.JobRecord{
		JobTitle:           "Minimal",
		CompanyName:        "Acme",
		SourceURL:          "http://example.com/minimal",
		JobBoard:           "ExampleJobs",
		IngestionTimestamp: "2025-10-18T12:00:00Z",
	}
	_, err := s.InsertBatch(ctx, []types.JobRecord{rec})
	require.NoError(t, err)

	records, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Nil(t, got.ID)
	assert.Nil(t, got.PublicationDate)
	assert.Nil(t, got.JobType)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.CandidateRequiredLocation)
	assert.Nil(t, got.SalaryRange)
	assert.Nil(t, got.JobDescription)
	assert.Nil(t, got.CompanyLogo)
}

func TestDedupKeyIntegrity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var batch []types.JobRecord
	for _, url := range []string{
		"http://example.com/a",
		"http://example.com/b",
		"http://example.com/a",
		"http://example.com/c",
		"http://example.com/b",
	} {
		batch = append(batch, sampleRecord(url))
	}

	_, err := s.InsertBatch(ctx, batch)
	require.NoError(t, err)

	records, err := s.FetchAll(ctx)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, rec := range records {
		assert.False(t, seen[rec.SourceURL], "duplicate source_url %q in store", rec.SourceURL)
		seen[rec.SourceURL] = true
	}
	assert.Len(t, records, 3)
}

func TestStore_ReconnectsAfterClose(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertBatch(ctx, []types.JobRecord{sampleRecord("http://example.com/job1")})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "repeated close must be tolerated")

	records, err := s.FetchAll(ctx)
	require.NoError(t, err, "operations reconnect transparently after close")
	assert.Len(t, records, 1)
}
