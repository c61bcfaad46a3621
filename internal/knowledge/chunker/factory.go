package chunker

import (
	"fmt"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// Factory builds Chunkers by strategy.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateChunkerConfig selects and configures a Chunker.
type CreateChunkerConfig struct {
	Strategy   kbtypes.ChunkStrategy // ChunkStrategyParagraph when empty
	Size       int                   // DefaultMaxTokens when 0
	Overlap    int
	Encoding   string
	Separators []string

	// Exact switches paragraph and recursive strategies from EstimateTokens
	// to a tiktoken count in Encoding.
	Exact bool
}

// CreateChunker builds the Chunker described by cfg.
func (f *Factory) CreateChunker(cfg *CreateChunkerConfig) (Chunker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	size := cfg.Size
	if size == 0 {
		size = DefaultMaxTokens
	}

	var estimate Estimator
	if cfg.Exact && cfg.Strategy != kbtypes.ChunkStrategyToken {
		var err error
		estimate, err = NewTiktokenEstimator(cfg.Encoding)
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Strategy {
	case "", kbtypes.ChunkStrategyParagraph:
		return NewParagraphChunker(&ParagraphChunkerConfig{
			MaxTokens: size,
			Estimator: estimate,
		})

	case kbtypes.ChunkStrategyRecursive:
		return NewRecursiveChunker(&RecursiveChunkerConfig{
			Size:       size,
			Overlap:    cfg.Overlap,
			Estimator:  estimate,
			Separators: cfg.Separators,
		})

	case kbtypes.ChunkStrategyToken:
		return NewTokenChunker(&TokenChunkerConfig{
			Size:     size,
			Overlap:  cfg.Overlap,
			Encoding: cfg.Encoding,
		})

	default:
		return nil, fmt.Errorf("unsupported chunk strategy: %s", cfg.Strategy)
	}
}
