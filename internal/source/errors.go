package source

import (
	"fmt"
	"strings"
)

// DataSourceError reports a failure acquiring or parsing raw data from a
// source: missing file, unreachable backend, or content that could not be
// parsed under any supported encoding/delimiter combination.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// SchemaValidationError reports that a loaded table failed validation. It
// carries the full ordered error list, never just the first problem.
type SchemaValidationError struct {
	Errors []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("the file does not match the required schema: %s",
		strings.Join(e.Errors, "; "))
}
