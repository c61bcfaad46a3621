package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
)

func TestTextLoader(t *testing.T) {
	doc, err := NewTextLoader().Load(context.Background(), strings.NewReader("Lot 1\n\nLot 2"))
	require.NoError(t, err)

	assert.Equal(t, "Lot 1\n\nLot 2", doc.Content)
	assert.Equal(t, "text", doc.Metadata["loader"])
}

func TestHTMLLoader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "blocks and skipped elements",
			input: `<html><head><title>ignored</title><style>p{color:red}</style></head><body>` +
				`<h1>Devis</h1><p>Lot 1 :
				  peinture</p><script>alert(1)</script>` +
				`<ul><li>murs</li><li>plafonds</li></ul><p>Total &amp; TVA</p></body></html>`,
			want: "Devis\n\nLot 1 : peinture\n\nmurs\nplafonds\n\nTotal & TVA",
		},
		{
			name:  "table cells",
			input: `<table><tr><td>Lot</td><td>Prix</td></tr><tr><td>Peinture</td><td>1500</td></tr></table>`,
			want:  "Lot\tPrix\nPeinture\t1500",
		},
		{
			name:  "line breaks",
			input: `<p>ligne 1<br>ligne 2</p><!-- note --><div>bloc</div>`,
			want:  "ligne 1\nligne 2\n\nbloc",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	loader := NewHTMLLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := loader.Load(context.Background(), strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Content)
		})
	}
}

func TestMarkdownLoader(t *testing.T) {
	input := "# Devis\n\nLot 1 : *peinture* des **murs**\n\n- murs\n- plafonds\n"

	doc, err := NewMarkdownLoader().Load(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Contains(t, doc.Content, "Devis\n\nLot 1 : peinture des murs")
	assert.Contains(t, doc.Content, "murs\nplafonds")
	assert.NotContains(t, doc.Content, "*")
	assert.NotContains(t, doc.Content, "<")
	assert.Equal(t, "markdown", doc.Metadata["loader"])
}

func TestJSONLoader(t *testing.T) {
	input := `{
		"client": "Dupont",
		"lots": [
			{"nom": "Peinture", "prix": 1500.50},
			{"nom": "Plomberie", "prix": null}
		],
		"tva": 20,
		"urgent": false
	}`

	doc, err := NewJSONLoader().Load(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	want := strings.Join([]string{
		"client: Dupont",
		"lots:",
		"  [0]:",
		"    nom: Peinture",
		"    prix: 1500.50",
		"  [1]:",
		"    nom: Plomberie",
		"tva: 20",
		"urgent: false",
	}, "\n")
	assert.Equal(t, want, doc.Content)
	assert.Equal(t, len(input), doc.Metadata["original_size"])
}

func TestJSONLoader_TopLevel(t *testing.T) {
	loader := NewJSONLoader()

	doc, err := loader.Load(context.Background(), strings.NewReader(`["a", 2]`))
	require.NoError(t, err)
	assert.Equal(t, "[0]: a\n[1]: 2", doc.Content)

	doc, err = loader.Load(context.Background(), strings.NewReader(`"seul"`))
	require.NoError(t, err)
	assert.Equal(t, "seul", doc.Content)
}

func TestJSONLoader_Invalid(t *testing.T) {
	_, err := NewJSONLoader().Load(context.Background(), strings.NewReader(`{"client":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestFactory(t *testing.T) {
	factory, err := NewFactory(nil)
	require.NoError(t, err)

	assert.Equal(t, []kbtypes.FileType{
		kbtypes.FileTypeDocx,
		kbtypes.FileTypeHtml,
		kbtypes.FileTypeJson,
		kbtypes.FileTypeMd,
		kbtypes.FileTypePdf,
		kbtypes.FileTypeTxt,
	}, factory.SupportedTypes())

	tests := []struct {
		fileType kbtypes.FileType
		want     Loader
	}{
		{kbtypes.FileTypeTxt, &TextLoader{}},
		{kbtypes.FileTypeMd, &MarkdownLoader{}},
		{kbtypes.FileTypeHtml, &HTMLLoader{}},
		{kbtypes.FileTypeJson, &JSONLoader{}},
		{kbtypes.FileTypePdf, &PDFLoader{}},
		{kbtypes.FileTypeDocx, &DOCXLoader{}},
	}
	for _, tt := range tests {
		t.Run(tt.fileType.String(), func(t *testing.T) {
			loader, err := factory.CreateLoader(tt.fileType)
			require.NoError(t, err)
			assert.IsType(t, tt.want, loader)
		})
	}

	_, err = factory.CreateLoader(kbtypes.FileType("xls"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type: xls")
}
