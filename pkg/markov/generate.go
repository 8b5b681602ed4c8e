package markov

import (
	"context"
	"iter"
	"log/slog"
	"strings"
)

// Sentence generates one sentence and returns its tokens joined by single
// spaces. It returns ErrEmptyModel if the model has no start prefixes.
func (g *Generator) Sentence(ctx context.Context) (string, error) {
	tokens, err := g.walk(ctx, nil)
	if err != nil {
		return "", err
	}
	return strings.Join(tokens, " "), nil
}

// Sentences returns a lazy, unbounded sequence of generated sentences. Each
// iteration step generates one sentence on demand. The sequence ends after
// yielding the first error, which is either ErrEmptyModel or a context error.
func (g *Generator) Sentences(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for {
			sentence, err := g.Sentence(ctx)
			if !yield(sentence, err) || err != nil {
				return
			}
		}
	}
}

// Generate returns count generated sentences.
func (g *Generator) Generate(ctx context.Context, count int) ([]string, error) {
	sentences := make([]string, 0, max(count, 0))
	if count <= 0 {
		return sentences, nil
	}
	for sentence, err := range g.Sentences(ctx) {
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, sentence)
		if len(sentences) == count {
			break
		}
	}
	return sentences, nil
}

// walk contains the main loop for generating one sentence. When emit is
// non-nil every token is passed to it as soon as it is chosen; walk stops
// early if emit returns false.
func (g *Generator) walk(ctx context.Context, emit func(string) bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	starts := g.model.starts
	prefix, ok := choose(g.options.rng, starts.entries, starts.total, &g.options)
	if !ok {
		return nil, ErrEmptyModel
	}

	maxLength := g.MaxLength()
	output := make([]string, 0, min(maxLength, 64))

	for len(output) < maxLength {
		token := prefix.First()
		output = append(output, token)
		if emit != nil && !emit(token) {
			return output, ctx.Err()
		}

		row, ok := g.model.lookup(prefix)
		if !ok { // Dead end in chain
			g.logger.DebugContext(ctx, "Generation terminated due to dead-end",
				slog.String("last_prefix", prefix.String()),
				slog.Int("generated_length", len(output)),
			)
			return output, nil
		}

		next, _ := choose(g.options.rng, row.entries, row.total, &g.options)
		prefix = prefix.Shift(next)
	}

	g.logger.DebugContext(ctx, "Generation terminated by reaching maxLength",
		slog.Int("max_length", maxLength),
		slog.Int("generated_length", len(output)),
	)
	return output, nil
}
