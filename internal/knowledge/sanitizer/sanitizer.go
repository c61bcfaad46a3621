package sanitizer

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxBytes is the UTF-8 budget applied when none is configured.
const DefaultMaxBytes = 500000

// Sanitize strips text down to characters that are safe to store and embed.
//
// Null bytes, surrogate code points and invalid UTF-8 sequences are removed,
// everything outside tab, LF, CR, printable ASCII and U+00C0..U+00FF is
// dropped, and the result is composed to NFC. The whitelist is lossy on
// purpose: the corpus is French technical text and anything else is
// extraction noise. A combining mark is outside the whitelist, so a
// decomposed "e" + U+0301 comes out as a bare "e".
//
// Sanitize is idempotent.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		i += size
		if r == 0 || isSurrogate(r) || (r == utf8.RuneError && size <= 1) {
			continue
		}
		if allowed(r) {
			b.WriteRune(r)
		}
	}

	return norm.NFC.String(b.String())
}

// SanitizeAndTruncate sanitizes input and cuts the result to at most maxBytes
// UTF-8 bytes. A character straddling the cut is dropped rather than split.
// Truncation is reported as a warning on logger, which may be nil.
// maxBytes <= 0 selects DefaultMaxBytes.
func SanitizeAndTruncate(input string, maxBytes int, logger *zap.Logger) string {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	out, _ := truncate(Sanitize(input), maxBytes, logger)
	return out
}

func truncate(clean string, maxBytes int, logger *zap.Logger) (string, bool) {
	if len(clean) <= maxBytes {
		return clean, false
	}

	truncated := strings.ToValidUTF8(clean[:maxBytes], "")
	if logger != nil {
		logger.Warn("text truncated to byte budget",
			zap.Int("original_bytes", len(clean)),
			zap.Int("truncated_bytes", len(truncated)),
			zap.Int("max_bytes", maxBytes),
		)
	}
	return truncated, true
}

// ByteLength returns the UTF-8 encoded length of s.
func ByteLength(s string) int {
	return len(s)
}

func isSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}

func allowed(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0x7E:
		return true
	case r >= 0xC0 && r <= 0xFF:
		return true
	}
	return false
}

// Sanitizer binds a byte budget and a logger for repeated use.
type Sanitizer struct {
	maxBytes int
	logger   *zap.Logger
}

// Config configures a Sanitizer.
type Config struct {
	MaxBytes int // UTF-8 byte budget, DefaultMaxBytes when <= 0
}

// New creates a Sanitizer. A nil logger discards truncation warnings.
func New(cfg *Config, logger *zap.Logger) *Sanitizer {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Sanitizer{
		maxBytes: maxBytes,
		logger:   logger.Named("sanitizer"),
	}
}

// Sanitize is the package-level Sanitize.
func (s *Sanitizer) Sanitize(input string) string {
	return Sanitize(input)
}

// SanitizeAndTruncate applies the configured byte budget.
func (s *Sanitizer) SanitizeAndTruncate(input string) string {
	return SanitizeAndTruncate(input, s.maxBytes, s.logger)
}

// Clean is SanitizeAndTruncate that also reports whether the budget cut
// the text.
func (s *Sanitizer) Clean(input string) (string, bool) {
	return truncate(Sanitize(input), s.maxBytes, s.logger)
}

// MaxBytes returns the configured byte budget.
func (s *Sanitizer) MaxBytes() int {
	return s.maxBytes
}
