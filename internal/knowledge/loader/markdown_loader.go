package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/russross/blackfriday/v2"
	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// MarkdownLoader renders Markdown and keeps the resulting text, so markup
// characters do not leak into chunks.
type MarkdownLoader struct{}

// NewMarkdownLoader creates a MarkdownLoader.
func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{}
}

// Load renders reader to HTML with blackfriday and extracts its text.
func (l *MarkdownLoader) Load(ctx context.Context, reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown content: %w", err)
	}

	rendered := blackfriday.Run(content)

	text, err := extractHTMLText(bytes.NewReader(rendered))
	if err != nil {
		return nil, err
	}

	return &Document{
		Content: text,
		Metadata: map[string]interface{}{
			"loader":          "markdown",
			"original_format": "markdown",
		},
	}, nil
}

// SupportedTypes returns the file types this loader handles.
func (l *MarkdownLoader) SupportedTypes() []kbtypes.FileType {
	return []kbtypes.FileType{
		kbtypes.FileTypeMd,
	}
}
