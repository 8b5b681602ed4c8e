// Package corpus supplies the text a markov.Reader is built from. It extracts
// plain text from documents in several formats, loads single files or whole
// directories, and keeps a SQLite-backed store of corpus documents.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CTAG07/wordwalk/pkg/markov"
)

var (
	// ErrUnsupported indicates a file extension no extractor handles.
	ErrUnsupported = errors.New("corpus: unsupported file type")

	// ErrNoDocuments indicates a directory with no supported documents in it.
	ErrNoDocuments = errors.New("corpus: no documents found")

	// ErrNotFound indicates a document id unknown to the store.
	ErrNotFound = errors.New("corpus: document not found")
)

// Document is one text of the corpus.
type Document struct {
	ID      string    `json:"id,omitempty"`
	Name    string    `json:"name"`
	Text    string    `json:"-"`
	Size    int       `json:"size"`
	AddedAt time.Time `json:"added_at,omitempty"`
}

// Feed reads every document into r, in order. The documents accumulate into
// r's single model as though they were one text.
func Feed(ctx context.Context, r *markov.Reader, docs []Document) error {
	for _, doc := range docs {
		if err := r.ReadString(ctx, doc.Text); err != nil {
			return fmt.Errorf("failed to read document %q: %w", doc.Name, err)
		}
	}
	return nil
}
