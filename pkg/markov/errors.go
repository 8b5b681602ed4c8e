package markov

import "errors"

var (
	// ErrDegenerateCorpus is returned by Reader.Build when the corpus produced
	// no sentences at all. No model is returned alongside it.
	ErrDegenerateCorpus = errors.New("markov: corpus contains no sentences")

	// ErrEmptyModel is returned when generation is attempted on a model with no
	// start prefixes, i.e. no sentence in the corpus was longer than the order.
	ErrEmptyModel = errors.New("markov: model has no start prefixes")

	// ErrInvalidOrder indicates a chain order below 1.
	ErrInvalidOrder = errors.New("markov: chain order must be at least 1")

	// ErrReaderBuilt is returned when input is fed to a Reader after Build.
	ErrReaderBuilt = errors.New("markov: reader has already built its model")
)
