package corpus

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Code blocks and raw
// HTML are skipped; every heading, paragraph and list item becomes its own
// paragraph.
type MarkdownExtractor struct{}

func (MarkdownExtractor) Extract(r io.Reader, _ string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var buf strings.Builder
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				buf.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				buf.Write(node.Value)
			}
		case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
			if !entering {
				buf.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
