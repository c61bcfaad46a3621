package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%02d", i+1)
	}
	return strings.Join(words, " ")
}

func TestNewRecursiveChunker(t *testing.T) {
	tests := []struct {
		name    string
		config  *RecursiveChunkerConfig
		wantErr bool
	}{
		{name: "nil config", config: nil},
		{name: "valid", config: &RecursiveChunkerConfig{Size: 100, Overlap: 10}},
		{name: "zero size", config: &RecursiveChunkerConfig{Size: 0}, wantErr: true},
		{name: "negative overlap", config: &RecursiveChunkerConfig{Size: 10, Overlap: -1}, wantErr: true},
		{name: "overlap not below size", config: &RecursiveChunkerConfig{Size: 10, Overlap: 10}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewRecursiveChunker(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestRecursiveChunker_Chunk(t *testing.T) {
	c, err := NewRecursiveChunker(&RecursiveChunkerConfig{Size: 8})
	require.NoError(t, err)

	chunks, err := c.Chunk(context.Background(), numberedWords(20))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"w01 w02 w03 w04 w05 w06 w07 w08",
		"w09 w10 w11 w12 w13 w14 w15 w16",
		"w17 w18 w19 w20",
	}, Contents(chunks))
	assert.Equal(t, 2, chunks[2].Index)
}

func TestRecursiveChunker_Overlap(t *testing.T) {
	c, err := NewRecursiveChunker(&RecursiveChunkerConfig{Size: 8, Overlap: 2})
	require.NoError(t, err)

	chunks, err := c.Chunk(context.Background(), numberedWords(20))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 3)

	assert.Equal(t, "w01 w02 w03 w04 w05 w06 w07 w08", chunks[0].Content)
	assert.True(t, strings.HasPrefix(chunks[1].Content, "w07 w08 w09"), chunks[1].Content)
	assert.Equal(t, 8, c.ChunkSize())
	assert.Equal(t, 2, c.ChunkOverlap())
}

func TestRecursiveChunker_PrefersParagraphs(t *testing.T) {
	c, err := NewRecursiveChunker(&RecursiveChunkerConfig{Size: 20})
	require.NoError(t, err)

	text := "Chapitre un.\n\nChapitre deux."
	chunks, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chapitre un.\n\nChapitre deux."}, Contents(chunks))
}

func TestRecursiveChunker_Properties(t *testing.T) {
	text := strings.Repeat("Dépose de l'ancien carrelage, évacuation des gravats. ", 40) +
		"\n\n" + strings.Repeat("Pose de plinthes! ", 30)

	for _, size := range []int{6, 30, 200} {
		c, err := NewRecursiveChunker(&RecursiveChunkerConfig{Size: size})
		require.NoError(t, err)

		chunks, err := c.Chunk(context.Background(), text)
		require.NoError(t, err)

		result := ValidateChunks(chunks)
		assert.True(t, result.Valid, result.Errors)
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(Contents(chunks), " ")))
	}
}

func TestRecursiveChunker_Empty(t *testing.T) {
	c, err := NewRecursiveChunker(nil)
	require.NoError(t, err)

	chunks, err := c.Chunk(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
