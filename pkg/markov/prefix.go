package markov

import "strings"

// prefixSep joins prefix tokens into a single comparable key. Tokenizers must
// not produce tokens containing it; the Reader drops any that do.
const prefixSep = "\x1f"

// Prefix is an ordered, fixed-length run of tokens used as the lookup key of a
// TransitionModel. Prefix values are immutable and comparable, so two prefixes
// are == exactly when their token sequences are equal element-wise.
type Prefix struct {
	key   string
	order int
}

// NewPrefix creates a Prefix from the given tokens, in order.
func NewPrefix(tokens ...string) Prefix {
	return Prefix{key: strings.Join(tokens, prefixSep), order: len(tokens)}
}

// Order returns the number of tokens in the prefix.
func (p Prefix) Order() int {
	return p.order
}

// Tokens returns a fresh copy of the prefix's tokens.
func (p Prefix) Tokens() []string {
	if p.order == 0 {
		return nil
	}
	return strings.Split(p.key, prefixSep)
}

// First returns the oldest token of the prefix.
func (p Prefix) First() string {
	if i := strings.Index(p.key, prefixSep); i >= 0 {
		return p.key[:i]
	}
	return p.key
}

// Shift drops the oldest token and appends next, keeping the order unchanged.
func (p Prefix) Shift(next string) Prefix {
	if p.order <= 1 {
		return Prefix{key: next, order: 1}
	}
	rest := p.key[strings.Index(p.key, prefixSep)+1:]
	return Prefix{key: rest + prefixSep + next, order: p.order}
}

// String returns the prefix tokens joined by single spaces.
func (p Prefix) String() string {
	return strings.ReplaceAll(p.key, prefixSep, " ")
}
