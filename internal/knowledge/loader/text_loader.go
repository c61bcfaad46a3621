package loader

import (
	"context"
	"fmt"
	"io"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// TextLoader passes plain text through unchanged.
type TextLoader struct{}

// NewTextLoader creates a TextLoader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load reads all of reader.
func (l *TextLoader) Load(ctx context.Context, reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read text content: %w", err)
	}

	return &Document{
		Content: string(content),
		Metadata: map[string]interface{}{
			"loader": "text",
		},
	}, nil
}

// SupportedTypes returns the file types this loader handles.
func (l *TextLoader) SupportedTypes() []kbtypes.FileType {
	return []kbtypes.FileType{
		kbtypes.FileTypeTxt,
	}
}
