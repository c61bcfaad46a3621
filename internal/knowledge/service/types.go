package service

import (
	"github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// SanitizeRequest is the body of POST /sanitize.
type SanitizeRequest struct {
	Text     string `json:"text"`
	MaxBytes int    `json:"max_bytes"` // optional, service default when 0
}

// SanitizeResponse reports the cleaned text and its byte counts.
type SanitizeResponse struct {
	Text           string `json:"text"`
	OriginalBytes  int    `json:"original_bytes"`
	SanitizedBytes int    `json:"sanitized_bytes"`
	Truncated      bool   `json:"truncated"`
}

// ChunkRequest is the body of POST /chunks. Zero values keep the service
// configuration.
type ChunkRequest struct {
	Text      string              `json:"text"`
	MaxTokens int                 `json:"max_tokens" binding:"min=0"`
	Strategy  types.ChunkStrategy `json:"strategy"`
	Overlap   int                 `json:"overlap" binding:"min=0"`
	StatsOnly bool                `json:"stats_only"`
}

func (r *ChunkRequest) overridesChunker() bool {
	return r.MaxTokens > 0 || r.Strategy != "" || r.Overlap > 0
}

// ChunkResponse is the result of chunking one text or file.
type ChunkResponse struct {
	Name           string                 `json:"name,omitempty"`
	Status         types.DocumentStatus   `json:"status"`
	Chunks         []*types.Chunk         `json:"chunks,omitempty"`
	Validation     types.ValidationResult `json:"validation"`
	Stats          types.ChunkingStats    `json:"stats"`
	OriginalBytes  int                    `json:"original_bytes"`
	SanitizedBytes int                    `json:"sanitized_bytes"`
	Truncated      bool                   `json:"truncated"`
}

func toChunkResponse(result *types.DocumentResult, statsOnly bool) *ChunkResponse {
	resp := &ChunkResponse{
		Name:           result.Name,
		Status:         result.Status,
		Chunks:         result.Chunks,
		Validation:     result.Validation,
		Stats:          result.Stats,
		OriginalBytes:  result.OriginalBytes,
		SanitizedBytes: result.SanitizedBytes,
		Truncated:      result.Truncated,
	}
	if statsOnly {
		resp.Chunks = nil
	}
	return resp
}

// BatchResponse lists per-file results of a multi-file upload in upload order.
type BatchResponse struct {
	Documents []*types.DocumentResult `json:"documents"`
}

// ValidateRequest wraps an arbitrary JSON value; only a list of non-blank
// strings is valid.
type ValidateRequest struct {
	Chunks interface{} `json:"chunks"`
}
