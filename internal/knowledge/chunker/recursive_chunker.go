package chunker

import (
	"context"
	"fmt"
	"strings"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// DefaultSeparators are tried in order, coarsest first.
var DefaultSeparators = []string{
	"\n\n", // paragraph
	"\n",   // line
	". ",   // sentence
	"! ",
	"? ",
	"; ",
	", ",
	" ",
}

// RecursiveChunker splits on a ranked separator list, descending to finer
// separators only for pieces that are still over budget, then merges the
// pieces back up to the budget.
type RecursiveChunker struct {
	estimate   Estimator
	size       int
	overlap    int
	separators []string
}

// RecursiveChunkerConfig configures a RecursiveChunker.
type RecursiveChunkerConfig struct {
	Size       int       // token budget per chunk
	Overlap    int       // tokens repeated from the previous chunk
	Estimator  Estimator // EstimateTokens when nil
	Separators []string  // DefaultSeparators when empty
}

// NewRecursiveChunker creates a RecursiveChunker.
func NewRecursiveChunker(cfg *RecursiveChunkerConfig) (*RecursiveChunker, error) {
	if cfg == nil {
		cfg = &RecursiveChunkerConfig{Size: DefaultMaxTokens}
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

	estimate := cfg.Estimator
	if estimate == nil {
		estimate = EstimateTokens
	}
	separators := cfg.Separators
	if len(separators) == 0 {
		separators = DefaultSeparators
	}

	return &RecursiveChunker{
		estimate:   estimate,
		size:       cfg.Size,
		overlap:    cfg.Overlap,
		separators: separators,
	}, nil
}

// Chunk splits text.
func (c *RecursiveChunker) Chunk(ctx context.Context, text string) ([]*kbtypes.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return []*kbtypes.Chunk{}, nil
	}

	splits := c.splitText(text, c.separators)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return newChunks(c.mergeSplits(splits), c.estimate), nil
}

// splitText cuts text on the first separator, keeping the separator attached
// to the preceding piece, and recurses into pieces that are still too large.
func (c *RecursiveChunker) splitText(text string, separators []string) []string {
	if len(separators) == 0 {
		return []string{text}
	}

	separator := separators[0]
	rest := separators[1:]

	var out []string
	for _, piece := range strings.SplitAfter(text, separator) {
		if piece == "" {
			continue
		}
		if c.estimate(piece) > c.size && len(rest) > 0 {
			out = append(out, c.splitText(piece, rest)...)
			continue
		}
		out = append(out, piece)
	}
	return out
}

// mergeSplits concatenates pieces up to the budget. When overlap is set, the
// trailing pieces of a flushed chunk that fit in the overlap budget seed the
// next one.
func (c *RecursiveChunker) mergeSplits(splits []string) []string {
	var (
		out     []string
		window  []string
		windowT []int
		tokens  int
	)

	flush := func() {
		if trimmed := strings.TrimSpace(strings.Join(window, "")); trimmed != "" {
			out = append(out, trimmed)
		}
		keep := len(window)
		kept := 0
		for keep > 0 && kept+windowT[keep-1] <= c.overlap {
			kept += windowT[keep-1]
			keep--
		}
		window = append([]string(nil), window[keep:]...)
		windowT = append([]int(nil), windowT[keep:]...)
		tokens = kept
	}

	for _, split := range splits {
		splitTokens := c.estimate(split)
		if len(window) > 0 && tokens+splitTokens > c.size {
			flush()
			// an overlap tail that leaves no room for split is dropped
			if tokens+splitTokens > c.size {
				window, windowT, tokens = nil, nil, 0
			}
		}
		window = append(window, split)
		windowT = append(windowT, splitTokens)
		tokens += splitTokens
	}
	if len(window) > 0 {
		flush()
	}

	return out
}

// ChunkSize returns the token budget.
func (c *RecursiveChunker) ChunkSize() int {
	return c.size
}

// ChunkOverlap returns the overlap budget.
func (c *RecursiveChunker) ChunkOverlap() int {
	return c.overlap
}
