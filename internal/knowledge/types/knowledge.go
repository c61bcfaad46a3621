package types

import (
	"path/filepath"
	"strings"
)

// FileType identifies the format a raw document arrives in.
type FileType string

const (
	FileTypeTxt  FileType = "txt"
	FileTypePdf  FileType = "pdf"
	FileTypeDocx FileType = "docx"
	FileTypeMd   FileType = "md"
	FileTypeHtml FileType = "html"
	FileTypeJson FileType = "json"
)

// Valid reports whether the file type is supported.
func (ft FileType) Valid() bool {
	switch ft {
	case FileTypeTxt, FileTypePdf, FileTypeDocx, FileTypeMd, FileTypeHtml, FileTypeJson:
		return true
	}
	return false
}

// String returns the string representation.
func (ft FileType) String() string {
	return string(ft)
}

// FileTypeFromName derives the file type from a file name extension.
// The second return value is false when the extension is unknown.
func FileTypeFromName(name string) (FileType, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch ext {
	case "txt", "text":
		return FileTypeTxt, true
	case "markdown":
		return FileTypeMd, true
	case "htm":
		return FileTypeHtml, true
	}
	ft := FileType(ext)
	return ft, ft.Valid()
}

// ChunkStrategy selects how sanitized text is split.
type ChunkStrategy string

const (
	// ChunkStrategyParagraph splits paragraph, then line, then word.
	ChunkStrategyParagraph ChunkStrategy = "paragraph"
	// ChunkStrategyToken slides a window over tokenizer output.
	ChunkStrategyToken ChunkStrategy = "token"
	// ChunkStrategyRecursive splits on a ranked separator list.
	ChunkStrategyRecursive ChunkStrategy = "recursive"
)

// Valid reports whether the strategy is known.
func (cs ChunkStrategy) Valid() bool {
	switch cs {
	case ChunkStrategyParagraph, ChunkStrategyToken, ChunkStrategyRecursive:
		return true
	}
	return false
}

// String returns the string representation.
func (cs ChunkStrategy) String() string {
	return string(cs)
}
