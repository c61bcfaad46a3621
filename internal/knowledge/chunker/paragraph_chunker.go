package chunker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

var (
	paragraphBreak = regexp.MustCompile(`(?:\r?\n){2,}`)
	lineBreak      = regexp.MustCompile(`(?:\r?\n)+`)
)

// separatorTokens is charged for every "\n" or " " joining two units.
const separatorTokens = 1

// ParagraphChunker packs lines into chunks, falling back to words when a
// single line is too large. Paragraph and line boundaries are kept whenever
// the budget allows.
type ParagraphChunker struct {
	maxTokens int
	estimate  Estimator
}

// ParagraphChunkerConfig configures a ParagraphChunker.
type ParagraphChunkerConfig struct {
	MaxTokens int       // token budget per chunk, DefaultMaxTokens when 0
	Estimator Estimator // EstimateTokens when nil
}

// NewParagraphChunker creates a ParagraphChunker.
func NewParagraphChunker(cfg *ParagraphChunkerConfig) (*ParagraphChunker, error) {
	if cfg == nil {
		cfg = &ParagraphChunkerConfig{}
	}
	if cfg.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}
	estimate := cfg.Estimator
	if estimate == nil {
		estimate = EstimateTokens
	}

	return &ParagraphChunker{
		maxTokens: maxTokens,
		estimate:  estimate,
	}, nil
}

// Chunk splits text. The text is expected to be sanitized already.
func (c *ParagraphChunker) Chunk(ctx context.Context, text string) ([]*kbtypes.Chunk, error) {
	contents, err := splitParagraphs(ctx, text, c.maxTokens, c.estimate)
	if err != nil {
		return nil, err
	}
	return newChunks(contents, c.estimate), nil
}

// ChunkSize returns the token budget.
func (c *ParagraphChunker) ChunkSize() int {
	return c.maxTokens
}

// ChunkOverlap always returns 0; paragraph chunks never overlap.
func (c *ParagraphChunker) ChunkOverlap() int {
	return 0
}

// ChunkText splits sanitized text into chunks of at most maxTokens estimated
// tokens, using EstimateTokens. maxTokens <= 0 selects DefaultMaxTokens.
//
// A single word longer than the budget is emitted whole.
func ChunkText(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	contents, _ := splitParagraphs(context.Background(), text, maxTokens, EstimateTokens)
	return contents
}

func splitParagraphs(ctx context.Context, text string, maxTokens int, estimate Estimator) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	acc := &accumulator{maxTokens: maxTokens, estimate: estimate}
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, line := range lineBreak.Split(paragraph, -1) {
			if strings.TrimSpace(line) == "" {
				continue
			}
			acc.add(line, "\n")
			if acc.tokens > maxTokens {
				acc.resplitWords()
			}
		}
	}
	acc.flush()

	return acc.out, nil
}

// accumulator builds chunks unit by unit. tokens is an upper bound on the
// estimate of current and stays <= maxTokens unless current is a single unit.
type accumulator struct {
	maxTokens int
	estimate  Estimator

	current string
	tokens  int
	out     []string
}

func (a *accumulator) add(unit, sep string) {
	unitTokens := a.estimate(unit)

	if a.current != "" && a.tokens+separatorTokens+unitTokens > a.maxTokens {
		a.flush()
	}

	if a.current == "" {
		a.current = unit
		a.tokens = unitTokens
		return
	}
	a.current += sep + unit
	a.tokens += separatorTokens + unitTokens
}

// resplitWords re-packs current at word granularity. Whatever does not fill
// a whole chunk stays in current so following lines can join it.
func (a *accumulator) resplitWords() {
	words := strings.Fields(a.current)
	if len(words) <= 1 {
		return
	}
	a.current = ""
	a.tokens = 0
	for _, word := range words {
		a.add(word, " ")
	}
}

func (a *accumulator) flush() {
	if trimmed := strings.TrimSpace(a.current); trimmed != "" {
		a.out = append(a.out, trimmed)
	}
	a.current = ""
	a.tokens = 0
}
