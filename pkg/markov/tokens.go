package markov

import "io"

// Token represents a single tokenized unit of text. It contains the text itself
// and a boolean flag indicating if it ends a chain (a sentence). An EOC token
// with empty text marks a boundary that carries no text of its own, such as a
// paragraph break.
type Token struct {
	Text string
	EOC  bool
}

// Tokenizer is an interface that defines the contract for splitting input text
// into sentences of tokens. This allows the Reader to be independent of the
// specific tokenization strategy; it only relies on the tokenizer being
// deterministic.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}
