package loader

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// JSONLoader flattens JSON documents into indented "key: value" lines.
type JSONLoader struct{}

// NewJSONLoader creates a JSONLoader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// Load validates reader as JSON and renders it as readable text. Keys keep
// their document order; null values are omitted.
func (l *JSONLoader) Load(ctx context.Context, reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read json content: %w", err)
	}

	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("invalid JSON format")
	}

	result := gjson.ParseBytes(content)

	var sb strings.Builder
	switch {
	case result.IsObject():
		result.ForEach(func(key, value gjson.Result) bool {
			writeJSONValue(&sb, key.String(), value, 0)
			return true
		})
	case result.IsArray():
		for i, item := range result.Array() {
			writeJSONValue(&sb, fmt.Sprintf("[%d]", i), item, 0)
		}
	default:
		sb.WriteString(scalarText(result))
	}

	return &Document{
		Content: strings.TrimRight(sb.String(), "\n"),
		Metadata: map[string]interface{}{
			"loader":        "json",
			"original_size": len(content),
		},
	}, nil
}

func writeJSONValue(sb *strings.Builder, key string, value gjson.Result, depth int) {
	indent := strings.Repeat("  ", depth)

	switch {
	case value.Type == gjson.Null:
		return
	case value.IsObject():
		fmt.Fprintf(sb, "%s%s:\n", indent, key)
		value.ForEach(func(k, v gjson.Result) bool {
			writeJSONValue(sb, k.String(), v, depth+1)
			return true
		})
	case value.IsArray():
		fmt.Fprintf(sb, "%s%s:\n", indent, key)
		for i, item := range value.Array() {
			writeJSONValue(sb, fmt.Sprintf("[%d]", i), item, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%s%s: %s\n", indent, key, scalarText(value))
	}
}

// scalarText keeps numbers as written so "1500.50" does not become "1500.5".
func scalarText(value gjson.Result) string {
	if value.Type == gjson.Number {
		return value.Raw
	}
	return value.String()
}

// SupportedTypes returns the file types this loader handles.
func (l *JSONLoader) SupportedTypes() []kbtypes.FileType {
	return []kbtypes.FileType{
		kbtypes.FileTypeJson,
	}
}
