package types

// Chunk is one bounded piece of sanitized text ready for embedding.
type Chunk struct {
	Index      int    `json:"index"`
	Content    string `json:"content"`
	TokenCount int    `json:"token_count"`
}

// ChunkingStats summarises a chunk set. It is derived on demand and never stored.
type ChunkingStats struct {
	// TotalLength is the UTF-8 byte length of the source text, not a
	// character count: "é" counts 2.
	TotalLength        int `json:"total_length"`
	TotalChunks        int `json:"total_chunks"`
	TotalTokens        int `json:"total_tokens"`
	AverageChunkTokens int `json:"average_chunk_tokens"`
	MaxChunkTokens     int `json:"max_chunk_tokens"`
}

// ValidationResult is an advisory judgment over a chunk list.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
