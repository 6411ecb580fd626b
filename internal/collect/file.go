package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sohia/remote-work-tracker/internal/schemas"
	"github.com/sohia/remote-work-tracker/internal/types"
)

// File replays a previously captured raw batch from a JSON file, the format
// the scrapers write when asked to dump instead of ingest. The file is
// schema-validated before any record enters the pipeline.
type File struct {
	path string
}

// NewFile builds a collector reading the given raw batch file.
func NewFile(path string) *File {
	return &File{path: path}
}

func (c *File) Name() string { return "file:" + c.path }

func (c *File) Collect(_ context.Context) ([]types.RawRecord, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file %s: %w", c.path, err)
	}

	if err := schemas.ValidateRawBatch(data); err != nil {
		return nil, fmt.Errorf("batch file %s: %w", c.path, err)
	}

	var records []types.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", c.path, err)
	}
	return records, nil
}

// WriteBatch dumps a raw batch to a JSON file in the replayable format.
func WriteBatch(path string, records []types.RawRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write batch file %s: %w", path, err)
	}
	return nil
}
