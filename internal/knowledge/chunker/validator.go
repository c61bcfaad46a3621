package chunker

import (
	"fmt"
	"reflect"
	"strings"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

// ValidateChunks checks that chunks is a non-empty list of non-blank strings
// before it is handed to an embedding call. chunks is treated as untrusted:
// it may be any slice or array, decoded JSON, or not a list at all.
//
// Every problem is reported; the result is advisory and ValidateChunks never
// panics.
func ValidateChunks(chunks any) kbtypes.ValidationResult {
	items, ok := asList(chunks)
	if !ok {
		return invalid("Chunks must be an array")
	}
	if len(items) == 0 {
		return invalid("No chunks provided")
	}

	errs := []string{}
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			errs = append(errs, fmt.Sprintf("Chunk %d: not a string (type: %s)", i, typeName(item)))
			continue
		}
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("Chunk %d: empty or whitespace only", i))
		}
	}

	return kbtypes.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func invalid(msg string) kbtypes.ValidationResult {
	return kbtypes.ValidationResult{Valid: false, Errors: []string{msg}}
}

func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case nil:
		return nil, false
	case []any:
		return list, true
	case []string:
		items := make([]any, len(list))
		for i, s := range list {
			items[i] = s
		}
		return items, true
	case []*kbtypes.Chunk:
		items := make([]any, len(list))
		for i, c := range list {
			if c != nil {
				items[i] = c.Content
			}
		}
		return items, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// typeName names the type the way a JSON producer would see it.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}
