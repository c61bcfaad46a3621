package chunker

import (
	"context"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// DefaultMaxTokens is the chunk budget used when none is configured.
const DefaultMaxTokens = 1000

// Chunker splits sanitized text into ordered chunks.
type Chunker interface {
	// Chunk splits text. Empty or whitespace-only text yields no chunks.
	Chunk(ctx context.Context, text string) ([]*kbtypes.Chunk, error)

	// ChunkSize returns the per-chunk token budget.
	ChunkSize() int

	// ChunkOverlap returns the number of tokens shared by neighbouring chunks.
	ChunkOverlap() int
}

// Contents returns the chunk texts in order.
func Contents(chunks []*kbtypes.Chunk) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.Content)
	}
	return out
}

func newChunks(contents []string, estimate Estimator) []*kbtypes.Chunk {
	chunks := make([]*kbtypes.Chunk, 0, len(contents))
	for i, content := range contents {
		chunks = append(chunks, &kbtypes.Chunk{
			Index:      i,
			Content:    content,
			TokenCount: estimate(content),
		})
	}
	return chunks
}
