package loader

import (
	"fmt"
	"sort"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// Config configures the built-in loaders.
type Config struct {
	DocxLicenseKey string // metered unioffice key, optional
}

// Factory maps file types to loaders.
type Factory struct {
	loaders map[kbtypes.FileType]Loader
}

// NewFactory creates a Factory with every built-in loader registered.
func NewFactory(cfg *Config) (*Factory, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	docx, err := NewDOCXLoader(cfg.DocxLicenseKey)
	if err != nil {
		return nil, err
	}

	factory := &Factory{
		loaders: make(map[kbtypes.FileType]Loader),
	}
	factory.registerLoader(NewTextLoader())
	factory.registerLoader(NewMarkdownLoader())
	factory.registerLoader(NewHTMLLoader())
	factory.registerLoader(NewPDFLoader())
	factory.registerLoader(NewJSONLoader())
	factory.registerLoader(docx)

	return factory, nil
}

func (f *Factory) registerLoader(loader Loader) {
	for _, fileType := range loader.SupportedTypes() {
		f.loaders[fileType] = loader
	}
}

// CreateLoader returns the loader for fileType.
func (f *Factory) CreateLoader(fileType kbtypes.FileType) (Loader, error) {
	loader, ok := f.loaders[fileType]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
	return loader, nil
}

// SupportedTypes returns the registered file types, sorted.
func (f *Factory) SupportedTypes() []kbtypes.FileType {
	types := make([]kbtypes.FileType, 0, len(f.loaders))
	for fileType := range f.loaders {
		types = append(types, fileType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
