package types

// DocumentStatus is the outcome of running one document through the pipeline.
type DocumentStatus string

const (
	// DocumentStatusCompleted produced a valid chunk set
	DocumentStatusCompleted DocumentStatus = "completed"
	// DocumentStatusInvalid produced chunks that failed validation
	DocumentStatusInvalid DocumentStatus = "invalid"
	// DocumentStatusFailed could not be loaded or chunked
	DocumentStatusFailed DocumentStatus = "failed"
)

// Valid reports whether the status is known.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusCompleted, DocumentStatusInvalid, DocumentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}
