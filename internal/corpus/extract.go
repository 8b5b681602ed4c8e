package corpus

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Extractor converts a raw document into plain text. Paragraphs are separated
// by blank lines so the tokenizer can treat them as sentence boundaries.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this package can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text":
		return TextExtractor{}, nil
	case ".md", ".markdown":
		return MarkdownExtractor{}, nil
	case ".html", ".htm":
		return HTMLExtractor{}, nil
	case ".pdf":
		return PDFExtractor{}, nil
	case ".docx":
		return DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// TextExtractor handles plain text files.
type TextExtractor struct{}

func (TextExtractor) Extract(r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return strings.ToValidUTF8(string(data), "�"), nil
	}
	return string(data), nil
}
