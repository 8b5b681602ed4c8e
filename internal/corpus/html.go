package corpus

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// blockElements end a paragraph of extracted text.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "td": true, "th": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "dd": true, "dt": true, "figcaption": true,
}

// HTMLExtractor handles HTML files. Only the body is read, and non-content
// elements such as scripts and navigation are skipped.
type HTMLExtractor struct{}

func (HTMLExtractor) Extract(r io.Reader, _ string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template", "nav", "footer", "header":
				return
			case "br":
				buf.WriteByte('\n')
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteString("\n\n")
		}
	}

	// Find <body> or use whole document.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return buf.String(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
