package types

// Document is one raw input handed to the ingestion pipeline.
type Document struct {
	// Name is only used for logging and to infer FileType when it is empty.
	Name     string   `json:"name"`
	FileType FileType `json:"file_type"`
	Content  []byte   `json:"-"`
}

// DocumentResult is the per-document outcome of a batch run.
type DocumentResult struct {
	Name           string           `json:"name"`
	Status         DocumentStatus   `json:"status"`
	Error          string           `json:"error,omitempty"`
	Chunks         []*Chunk         `json:"chunks"`
	Validation     ValidationResult `json:"validation"`
	Stats          ChunkingStats    `json:"stats"`
	OriginalBytes  int              `json:"original_bytes"`
	SanitizedBytes int              `json:"sanitized_bytes"`
	Truncated      bool             `json:"truncated"`
}
