package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/document"
)

// DOCXLoader extracts paragraphs and table cells from Word documents.
type DOCXLoader struct{}

// NewDOCXLoader creates a DOCXLoader. A non-empty licenseKey is registered
// with unioffice as a metered key; without one unioffice runs unlicensed.
func NewDOCXLoader(licenseKey string) (*DOCXLoader, error) {
	if licenseKey != "" {
		if err := license.SetMeteredKey(licenseKey); err != nil {
			return nil, fmt.Errorf("failed to set unioffice license: %w", err)
		}
	}
	return &DOCXLoader{}, nil
}

// Load reads the document body. Each paragraph ends a line; each table is
// emitted row by row with tab-separated cells and closed by a blank line.
func (l *DOCXLoader) Load(ctx context.Context, reader io.Reader) (*Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read DOCX data: %w", err)
	}

	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX document: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	paragraphs := doc.Paragraphs()
	for _, para := range paragraphs {
		writeParagraph(&sb, para)
		sb.WriteString("\n")
	}

	tables := doc.Tables()
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sb.WriteString("\n")
		for _, row := range table.Rows() {
			cells := row.Cells()
			for i, cell := range cells {
				if i > 0 {
					sb.WriteString("\t")
				}
				for _, para := range cell.Paragraphs() {
					writeParagraph(&sb, para)
				}
			}
			sb.WriteString("\n")
		}
	}

	return &Document{
		Content: sb.String(),
		Metadata: map[string]interface{}{
			"loader":          "docx",
			"paragraph_count": len(paragraphs),
			"table_count":     len(tables),
		},
	}, nil
}

func writeParagraph(sb *strings.Builder, para document.Paragraph) {
	for _, run := range para.Runs() {
		sb.WriteString(run.Text())
	}
}

// SupportedTypes returns the file types this loader handles.
func (l *DOCXLoader) SupportedTypes() []kbtypes.FileType {
	return []kbtypes.FileType{
		kbtypes.FileTypeDocx,
	}
}
