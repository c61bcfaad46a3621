package chunker

import (
	"math"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// GetChunkingStats summarises chunks produced from text, estimating each
// chunk with EstimateTokens. TotalLength is the UTF-8 byte length of text.
func GetChunkingStats(text string, chunks []string) kbtypes.ChunkingStats {
	counts := make([]int, len(chunks))
	for i, c := range chunks {
		counts[i] = EstimateTokens(c)
	}
	return buildStats(len(text), counts)
}

// StatsForChunks summarises chunks using their recorded TokenCount.
func StatsForChunks(text string, chunks []*kbtypes.Chunk) kbtypes.ChunkingStats {
	counts := make([]int, 0, len(chunks))
	for _, c := range chunks {
		if c != nil {
			counts = append(counts, c.TokenCount)
		}
	}
	return buildStats(len(text), counts)
}

func buildStats(totalLength int, counts []int) kbtypes.ChunkingStats {
	stats := kbtypes.ChunkingStats{
		TotalLength: totalLength,
		TotalChunks: len(counts),
	}
	for _, n := range counts {
		stats.TotalTokens += n
		if n > stats.MaxChunkTokens {
			stats.MaxChunkTokens = n
		}
	}
	if stats.TotalChunks > 0 {
		stats.AverageChunkTokens = int(math.Round(float64(stats.TotalTokens) / float64(stats.TotalChunks)))
	}
	return stats
}
