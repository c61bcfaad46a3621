package loader

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"
	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// PDFLoader extracts text page by page with MuPDF.
type PDFLoader struct{}

// NewPDFLoader creates a PDFLoader.
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

// Load extracts the text of every page. Pages are separated by a blank line
// so each page starts a new paragraph. Pages MuPDF cannot read are skipped
// and counted in the "skipped_pages" metadata.
func (l *PDFLoader) Load(ctx context.Context, reader io.Reader) (*Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF data: %w", err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	skipped := 0

	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.Text(i)
		if err != nil {
			skipped++
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return &Document{
		Content: strings.Join(pages, "\n\n"),
		Metadata: map[string]interface{}{
			"loader":        "pdf",
			"page_count":    numPages,
			"skipped_pages": skipped,
		},
	}, nil
}

// SupportedTypes returns the file types this loader handles.
func (l *PDFLoader) SupportedTypes() []kbtypes.FileType {
	return []kbtypes.FileType{
		kbtypes.FileTypePdf,
	}
}
