package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor(t *testing.T) {
	text, err := TextExtractor{}.Extract(strings.NewReader("Hello, world.\n\nSecond paragraph."), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world.\n\nSecond paragraph.", text)

	text, err = TextExtractor{}.Extract(strings.NewReader("bad \xff byte"), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "bad � byte", text)
}

func TestMarkdownExtractor(t *testing.T) {
	src := "# The Title\n\nThe cat sat on the mat.\nIt purred.\n\n```go\nfunc main() {}\n```\n\n- item one\n- item two\n"

	text, err := MarkdownExtractor{}.Extract(strings.NewReader(src), "doc.md")
	require.NoError(t, err)

	assert.Contains(t, text, "The Title\n\n")
	assert.Contains(t, text, "The cat sat on the mat.\nIt purred.")
	assert.Contains(t, text, "item one")
	assert.Contains(t, text, "item two")
	assert.NotContains(t, text, "func main")
	assert.NotContains(t, text, "#")
}

func TestHTMLExtractor(t *testing.T) {
	src := `<html><head><title>ignored</title><style>p{}</style></head><body>
<nav>menu</nav>
<h1>Heading</h1>
<p>Hello <b>world</b>.</p>
<script>var x = 1;</script>
<ul><li>one</li><li>two</li></ul>
</body></html>`

	text, err := HTMLExtractor{}.Extract(strings.NewReader(src), "page.html")
	require.NoError(t, err)

	assert.Contains(t, text, "Heading\n\n")
	assert.Contains(t, text, "Hello world.\n\n")
	assert.Contains(t, text, "one\n\n")
	assert.Contains(t, text, "two\n\n")
	assert.NotContains(t, text, "menu")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "ignored")
}

func TestForFile(t *testing.T) {
	tests := []struct {
		name string
		want Extractor
	}{
		{"a.txt", TextExtractor{}},
		{"a.TEXT", TextExtractor{}},
		{"notes.md", MarkdownExtractor{}},
		{"notes.markdown", MarkdownExtractor{}},
		{"page.HTML", HTMLExtractor{}},
		{"page.htm", HTMLExtractor{}},
		{"paper.pdf", PDFExtractor{}},
		{"letter.docx", DOCXExtractor{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ForFile(tt.name)
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
			assert.True(t, IsSupportedExtension(tt.name))
		})
	}

	_, err := ForFile("image.png")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.False(t, IsSupportedExtension("image.png"))
	assert.False(t, IsSupportedExtension("README"))
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	_, err := PDFExtractor{}.Extract(strings.NewReader("not a pdf"), "x.pdf")
	assert.Error(t, err)
}

func TestDOCXExtractorRejectsGarbage(t *testing.T) {
	_, err := DOCXExtractor{}.Extract(strings.NewReader("not a zip"), "x.docx")
	assert.Error(t, err)
}
