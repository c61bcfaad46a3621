package loader

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	kbtypes "github.com/torp-app/devis-ingest/internal/knowledge/types"
	"golang.org/x/net/html"
)

// HTMLLoader extracts visible text from HTML documents.
type HTMLLoader struct{}

// NewHTMLLoader creates an HTMLLoader.
func NewHTMLLoader() *HTMLLoader {
	return &HTMLLoader{}
}

// Load parses reader as HTML and returns its visible text. Block elements
// become line or paragraph breaks so the chunker can split on them.
func (l *HTMLLoader) Load(ctx context.Context, reader io.Reader) (*Document, error) {
	text, err := extractHTMLText(reader)
	if err != nil {
		return nil, err
	}

	return &Document{
		Content: text,
		Metadata: map[string]interface{}{
			"loader": "html",
		},
	}, nil
}

// SupportedTypes returns the file types this loader handles.
func (l *HTMLLoader) SupportedTypes() []kbtypes.FileType {
	return []kbtypes.FileType{
		kbtypes.FileTypeHtml,
	}
}

var (
	skippedElements = map[string]bool{
		"script":   true,
		"style":    true,
		"head":     true,
		"noscript": true,
		"template": true,
	}

	// elements rendered as a paragraph boundary
	paragraphElements = map[string]bool{
		"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"ul": true, "ol": true, "table": true, "blockquote": true, "pre": true,
		"section": true, "article": true, "header": true, "footer": true, "hr": true,
	}

	// elements rendered as a line boundary
	lineElements = map[string]bool{
		"br": true, "li": true, "tr": true, "div": true, "dt": true, "dd": true,
	}

	whitespaceRun  = regexp.MustCompile(`[ \t\r\n\f]+`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
)

func extractHTMLText(reader io.Reader) (string, error) {
	doc, err := html.Parse(reader)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(whitespaceRun.ReplaceAllString(n.Data, " "))
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if n.Data == "td" || n.Data == "th" {
				defer sb.WriteString("\t")
			}
		}

		var brk string
		if n.Type == html.ElementNode {
			switch {
			case paragraphElements[n.Data]:
				brk = "\n\n"
				sb.WriteString(brk)
			case lineElements[n.Data]:
				brk = "\n"
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		sb.WriteString(brk)
	}
	walk(doc)

	return cleanWhitespace(sb.String()), nil
}

// cleanWhitespace trims every line and collapses runs of blank lines into a
// single paragraph break.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
