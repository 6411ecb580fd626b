// Package schemas validates raw record batch files against the shared
// source vocabulary before they enter the pipeline.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed raw_batch.schema.json
var rawBatchSchema string

// ValidationError reports every field-level violation found in a batch file.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific document path.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "batch validation failed"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "batch validation failed: " + strings.Join(parts, "; ")
}

// ValidateRawBatch checks a JSON document against the raw batch schema: a
// top-level array of record objects, each carrying at least the non-null
// source fields. Extra unknown fields are allowed; the normalizer drops
// them later.
func ValidateRawBatch(document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(rawBatchSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
