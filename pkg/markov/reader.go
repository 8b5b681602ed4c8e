package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// maxSentenceLength prevents massive unterminated sentences from taking up a
// large amount of memory; longer runs are split.
const maxSentenceLength = 4096

// readerOptions holds the explicit configuration of a Reader.
type readerOptions struct {
	order     int
	normalize bool
	minFreq   float64
	prune     bool
}

// ReaderOption is a function that configures a Reader.
type ReaderOption func(*readerOptions)

// WithOrder sets the chain order, the number of preceding tokens used as
// context for the next one.
// Default: 2
func WithOrder(n int) ReaderOption {
	return func(o *readerOptions) { o.order = n }
}

// WithNormalization sets whether Build converts counts to probabilities.
// Generation is unaffected either way.
// Default: false
func WithNormalization(normalize bool) ReaderOption {
	return func(o *readerOptions) { o.normalize = normalize }
}

// WithPruning makes Build drop every chain link seen minFreq times or fewer.
// Pruning happens before normalization.
func WithPruning(minFreq int) ReaderOption {
	return func(o *readerOptions) {
		o.prune = minFreq > 0
		o.minFreq = float64(minFreq)
	}
}

// Reader scans a corpus and compiles it into a TransitionModel. Documents are
// read sequentially with Read or ReadString and accumulate into one shared
// model, as though the corpus were a single text. Build finalizes the model;
// after that the Reader accepts no further input.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	tokenizer Tokenizer
	options   readerOptions
	model     *TransitionModel
	documents int
	built     bool
	logger    *slog.Logger
}

// NewReader creates a Reader that splits input with tokenizer. It returns
// ErrInvalidOrder if the configured order is below 1.
func NewReader(tokenizer Tokenizer, opts ...ReaderOption) (*Reader, error) {
	options := readerOptions{order: 2}
	for _, opt := range opts {
		opt(&options)
	}
	if options.order < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, options.order)
	}
	if tokenizer == nil {
		return nil, errors.New("markov: nil tokenizer")
	}

	return &Reader{
		tokenizer: tokenizer,
		options:   options,
		model:     newTransitionModel(options.order),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// SetLogger sets the logger for the Reader. By default, all logs are discarded.
func (r *Reader) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Order returns the chain order the Reader builds.
func (r *Reader) Order() int {
	return r.options.order
}

// ReadString is a convenience wrapper around Read for in-memory text.
func (r *Reader) ReadString(ctx context.Context, text string) error {
	return r.Read(ctx, strings.NewReader(text))
}

// Read tokenizes one document from data and adds its sentences to the model.
// If reading fails partway, the sentences already scanned stay in the model;
// callers that need all-or-nothing semantics should discard the Reader.
func (r *Reader) Read(ctx context.Context, data io.Reader) error {
	if r.built {
		return ErrReaderBuilt
	}

	stream := r.tokenizer.NewStream(data)
	sentence := make([]string, 0, 64)
	var sentenceCount, tokenCount int

	flush := func() {
		if len(sentence) == 0 {
			return
		}
		r.processSentence(sentence)
		sentenceCount++
		tokenCount += len(sentence)
		sentence = sentence[:0]
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("tokenizer error: %w", err)
		}

		switch {
		case token.EOC && len(sentence) == 0:
			// A terminator with nothing before it ends nothing.
			continue
		case token.Text == "" || strings.Contains(token.Text, prefixSep):
		default:
			if len(sentence) >= maxSentenceLength {
				flush()
			}
			sentence = append(sentence, token.Text)
		}
		if token.EOC {
			flush()
		}
	}
	flush()

	r.documents++
	r.logger.DebugContext(ctx, "Document read",
		slog.Int("document", r.documents),
		slog.Int("sentences_processed", sentenceCount),
		slog.Int("tokens_processed", tokenCount),
	)
	return nil
}

// processSentence records the start prefix and every order-N window of one
// sentence. Sentences no longer than the order still count toward the
// length statistics but cannot seed generation.
func (r *Reader) processSentence(tokens []string) {
	m := r.model
	n := m.order

	m.sentenceCount++
	m.tokenCount += len(tokens)

	if len(tokens) <= n {
		return
	}

	m.observeStart(NewPrefix(tokens[:n]...))
	for i := 0; i+n < len(tokens); i++ {
		m.observe(NewPrefix(tokens[i:i+n]...), tokens[i+n])
	}
}

// Build finalizes and returns the model. It computes the average sentence
// length, applies pruning and normalization if configured, and closes the
// Reader to further input. If the corpus contained no sentences it returns
// ErrDegenerateCorpus and no model.
func (r *Reader) Build(ctx context.Context) (*TransitionModel, error) {
	if r.built {
		return nil, ErrReaderBuilt
	}
	r.built = true

	m := r.model
	r.model = nil
	if m.sentenceCount == 0 {
		return nil, ErrDegenerateCorpus
	}
	m.averageSentenceLength = m.tokenCount / m.sentenceCount

	if r.options.prune {
		var removed int
		m, removed = m.Prune(r.options.minFreq)
		r.logger.DebugContext(ctx, "Model pruned",
			slog.Float64("min_frequency", r.options.minFreq),
			slog.Int("chains_removed", removed),
		)
	}
	if r.options.normalize {
		m = m.Normalize()
	}

	r.logger.InfoContext(ctx, "Model built",
		slog.Int("order", m.order),
		slog.Int("documents", r.documents),
		slog.Int("sentences_processed", m.sentenceCount),
		slog.Int("prefixes", len(m.rows)),
		slog.Int("starting_prefixes", len(m.starts.entries)),
		slog.Int("average_sentence_length", m.averageSentenceLength),
	)
	return m, nil
}
