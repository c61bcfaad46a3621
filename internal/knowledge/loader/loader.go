package loader

import (
	"context"
	"io"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// Loader extracts raw text from one document format. The text is not
// sanitized; callers run it through the sanitizer before chunking.
type Loader interface {
	// Load reads the whole document and returns its text.
	Load(ctx context.Context, reader io.Reader) (*Document, error)

	// SupportedTypes returns the file types this loader handles.
	SupportedTypes() []kbtypes.FileType
}

// Document is the extracted text of a loaded file.
type Document struct {
	Content  string
	Metadata map[string]interface{}
}

// LoaderFactory resolves a Loader for a file type.
type LoaderFactory interface {
	CreateLoader(fileType kbtypes.FileType) (Loader, error)
	SupportedTypes() []kbtypes.FileType
}
