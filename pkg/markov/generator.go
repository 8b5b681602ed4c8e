package markov

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
)

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxLength   int
	temperature float64
	topK        int
	rng         *rand.Rand
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument to NewGenerator.
type GenerateOption func(*generateOptions)

// WithMaxLength sets the maximum number of tokens in a generated sentence. A
// sentence may end earlier when the walk reaches a prefix with no recorded
// continuation. A value of 0 or less falls back to the model's average
// sentence length.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

// WithTemperature adjusts the randomness of the token selection.
// A value of 1.0 is standard weighted random selection.
// Values > 1.0 increase randomness (making less frequent tokens more likely).
// Values < 1.0 decrease randomness (making more frequent tokens even more likely).
// A value of 0 or less results in deterministic selection (always choosing the most frequent token).
func WithTemperature(t float64) GenerateOption {
	return func(o *generateOptions) { o.temperature = t }
}

// WithTopK restricts the selection pool to the top `k` most frequent items
// at each step. A value of 0 disables Top-K sampling.
func WithTopK(k int) GenerateOption {
	return func(o *generateOptions) { o.topK = k }
}

// WithSeed makes generation reproducible by seeding the generator's own
// random source.
func WithSeed(seed uint64) GenerateOption {
	return func(o *generateOptions) { o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithRand sets the random source used for sampling. The source is owned by
// the Generator from then on and must not be shared with other goroutines.
func WithRand(rng *rand.Rand) GenerateOption {
	return func(o *generateOptions) { o.rng = rng }
}

// Generator performs weighted random walks over a TransitionModel. It only
// reads the model, so many Generators may share one model concurrently, but a
// single Generator owns its random source and is not safe for concurrent use.
type Generator struct {
	model   *TransitionModel
	options generateOptions
	logger  *slog.Logger
}

// NewGenerator creates a Generator over a fully built model.
func NewGenerator(model *TransitionModel, opts ...GenerateOption) (*Generator, error) {
	if model == nil {
		return nil, errors.New("markov: nil model")
	}

	options := generateOptions{
		maxLength:   100,
		temperature: 1.0,
		topK:        0,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.rng == nil {
		options.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Generator{
		model:   model,
		options: options,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Model returns the model the Generator walks.
func (g *Generator) Model() *TransitionModel {
	return g.model
}

// MaxLength returns the effective per-sentence token bound. An explicit
// maximum always wins; otherwise the model's average sentence length is used.
func (g *Generator) MaxLength() int {
	if g.options.maxLength > 0 {
		return g.options.maxLength
	}
	return max(g.model.averageSentenceLength, 1)
}
