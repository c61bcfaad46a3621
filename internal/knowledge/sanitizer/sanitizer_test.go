package sanitizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// loneSurrogate is U+D800 encoded the way broken extractors emit it. Go string
// literals cannot spell a surrogate with \u, so the raw bytes are used.
const loneSurrogate = "\xed\xa0\x80"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "null byte and lone surrogate",
			input: "Café\x00 déjà" + loneSurrogate + "vu",
			want:  "Café déjàvu",
		},
		{
			name:  "keeps whitespace controls",
			input: "Ligne 1\nLigne 2\r\n\tindentée",
			want:  "Ligne 1\nLigne 2\r\n\tindentée",
		},
		{
			name:  "drops other controls",
			input: "a\x01b\x07c\x1bd\x7fe",
			want:  "abcde",
		},
		{
			name:  "drops emoji and CJK",
			input: "Devis 🏠 rénovation 工程 toiture",
			want:  "Devis  rénovation  toiture",
		},
		{
			name:  "drops combining marks before composing",
			input: "e\u0301le\u0300ve",
			want:  "eleve",
		},
		{
			name:  "keeps precomposed accents",
			input: "\u00e9l\u00e8ve",
			want:  "élève",
		},
		{
			name:  "invalid utf8 bytes",
			input: string([]byte{'T', 'V', 'A', 0xBA, ' ', '2', '0', '%'}),
			want:  "TVA 20%",
		},
		{
			name:  "drops replacement character",
			input: "prix� HT",
			want:  "prix HT",
		},
		{
			name:  "latin1 range bounds",
			input: "¿ÀÿĀ",
			want:  "Àÿ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Café\x00 déjà" + loneSurrogate + "vu",
		"c\u0327a\u0300 e\u0301\u0301",
		"ȩ́́",
		string([]byte{0xff, 0xfe, 'o', 'k', 0xc3}),
		"日本語 and ASCII\t\r\n",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), "input %q", input)
	}
}

func TestSanitize_Whitelist(t *testing.T) {
	var sb strings.Builder
	for r := rune(0); r < 0x3000; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		sb.WriteRune(r)
	}

	out := Sanitize(sb.String())
	require.True(t, utf8.ValidString(out))
	for _, r := range out {
		ok := r == 0x09 || r == 0x0A || r == 0x0D ||
			(r >= 0x20 && r <= 0x7E) ||
			(r >= 0xC0 && r <= 0xFF)
		assert.Truef(t, ok, "unexpected rune %U", r)
	}
}

func TestSanitizeAndTruncate_UnderBudget(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	got := SanitizeAndTruncate("short text", 100, zap.New(core))

	assert.Equal(t, "short text", got)
	assert.Equal(t, 0, logs.Len())
}

func TestSanitizeAndTruncate_OverBudget(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	got := SanitizeAndTruncate(strings.Repeat("x", 600000), 500000, zap.New(core))

	assert.Equal(t, 500000, ByteLength(got))
	assert.True(t, utf8.ValidString(got))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.EqualValues(t, 600000, fields["original_bytes"])
	assert.EqualValues(t, 500000, fields["truncated_bytes"])
}

func TestSanitizeAndTruncate_DropsSplitCharacter(t *testing.T) {
	// "é" is two bytes; a budget of 5 lands inside the third one.
	got := SanitizeAndTruncate("ééé", 5, nil)

	assert.Equal(t, "éé", got)
	assert.LessOrEqual(t, ByteLength(got), 5)
	assert.True(t, utf8.ValidString(got))
}

func TestSanitizeAndTruncate_Bound(t *testing.T) {
	input := strings.Repeat("Réception des travaux, procès-verbal signé. ", 200)

	for _, maxBytes := range []int{1, 2, 3, 7, 64, 1001, 4096} {
		got := SanitizeAndTruncate(input, maxBytes, nil)
		assert.LessOrEqual(t, ByteLength(got), maxBytes)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, got, Sanitize(got))
	}
}

func TestSanitizeAndTruncate_DefaultBudget(t *testing.T) {
	got := SanitizeAndTruncate(strings.Repeat("a", DefaultMaxBytes+10), 0, nil)
	assert.Equal(t, DefaultMaxBytes, len(got))
}

func TestSanitizer(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(&Config{MaxBytes: 8}, zap.New(core))

	assert.Equal(t, 8, s.MaxBytes())
	assert.Equal(t, "abc", s.Sanitize("a\x00bc"))
	assert.Equal(t, "abcdefgh", s.SanitizeAndTruncate("abcdefghij"))
	assert.Equal(t, 1, logs.FilterMessage("text truncated to byte budget").Len())

	clean, truncated := s.Clean("abc\x00")
	assert.Equal(t, "abc", clean)
	assert.False(t, truncated)

	clean, truncated = s.Clean("0123456789é")
	assert.Equal(t, "01234567", clean)
	assert.True(t, truncated)

	assert.Equal(t, DefaultMaxBytes, New(nil, nil).MaxBytes())
}
