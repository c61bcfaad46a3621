package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// TokenChunker slides a fixed window over the tokenizer output. It ignores
// text structure and is meant for inputs with no usable line breaks.
type TokenChunker struct {
	encoding *tiktoken.Tiktoken
	size     int
	overlap  int
}

// TokenChunkerConfig configures a TokenChunker.
type TokenChunkerConfig struct {
	Size     int    // tokens per chunk
	Overlap  int    // tokens shared with the previous chunk
	Encoding string // DefaultEncoding when empty
}

// NewTokenChunker creates a TokenChunker.
func NewTokenChunker(cfg *TokenChunkerConfig) (*TokenChunker, error) {
	if cfg == nil {
		cfg = &TokenChunkerConfig{Size: DefaultMaxTokens}
	}

	if cfg.Size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive")
	}
	if cfg.Overlap < 0 {
		return nil, fmt.Errorf("chunk overlap cannot be negative")
	}
	if cfg.Overlap >= cfg.Size {
		return nil, fmt.Errorf("chunk overlap must be less than chunk size")
	}

	name := cfg.Encoding
	if name == "" {
		name = DefaultEncoding
	}
	encoding, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding: %w", err)
	}

	return &TokenChunker{
		encoding: encoding,
		size:     cfg.Size,
		overlap:  cfg.Overlap,
	}, nil
}

// Chunk splits text into windows of Size tokens.
func (c *TokenChunker) Chunk(ctx context.Context, text string) ([]*kbtypes.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return []*kbtypes.Chunk{}, nil
	}

	tokens := c.encoding.Encode(text, nil, nil)
	step := c.size - c.overlap

	chunks := make([]*kbtypes.Chunk, 0, len(tokens)/step+1)
	for start := 0; start < len(tokens); start += step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+c.size, len(tokens))
		content := strings.TrimSpace(c.encoding.Decode(tokens[start:end]))
		if content != "" {
			chunks = append(chunks, &kbtypes.Chunk{
				Index:      len(chunks),
				Content:    content,
				TokenCount: end - start,
			})
		}
		if end == len(tokens) {
			break
		}
	}

	return chunks, nil
}

// ChunkSize returns the window size.
func (c *TokenChunker) ChunkSize() int {
	return c.size
}

// ChunkOverlap returns the window overlap.
func (c *TokenChunker) ChunkOverlap() int {
	return c.overlap
}

// Estimator returns an Estimator using the same encoding.
func (c *TokenChunker) Estimator() Estimator {
	return func(s string) int {
		return len(c.encoding.Encode(s, nil, nil))
	}
}
