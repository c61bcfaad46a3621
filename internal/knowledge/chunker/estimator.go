package chunker

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tiktoken encoding used by OpenAI embedding models.
const DefaultEncoding = "cl100k_base"

// Estimator returns the number of tokens s will cost.
type Estimator func(s string) int

// EstimateTokens is the model-agnostic heuristic of one token per four UTF-8
// bytes, rounded up.
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// NewTiktokenEstimator returns an Estimator backed by a real BPE encoding.
func NewTiktokenEstimator(encoding string) (Estimator, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %q: %w", encoding, err)
	}
	return func(s string) int {
		return len(enc.Encode(s, nil, nil))
	}, nil
}
