package markov

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// maxLineSize bounds a single scanned line. Longer lines are cut at their last
// space or tab before the limit, or at a rune boundary if there is none.
const maxLineSize = 1024 * 1024

// scanLines is bufio.ScanLines that never fails with bufio.ErrTooLong.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	advance, token, err := bufio.ScanLines(data, atEOF)
	if advance > 0 || token != nil || err != nil || len(data) < maxLineSize {
		return advance, token, err
	}

	// The buffer is full and holds no newline.
	if cut := bytes.LastIndexAny(data, " \t"); cut > 0 {
		return cut + 1, data[:cut], nil
	}
	cut := len(data)
	start := cut - 1
	for start > 0 && cut-start < utf8.UTFMax && !utf8.RuneStart(data[start]) {
		start--
	}
	if !utf8.FullRune(data[start:]) {
		cut = start
	}
	return cut, data[:cut], nil
}

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It uses regular expressions to split text into words and punctuation,
// and identifies sentence-ending punctuation as End-Of-Chain (EOC) tokens.
// Tokens are NFC-normalized and case-folded unless configured otherwise.
// Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	separatorRegex  *regexp.Regexp
	eocRegex        *regexp.Regexp
	filterRegex     *regexp.Regexp
	foldCase        bool
	paragraphBreaks bool
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithSeparatorRegex sets the regex string to use when splitting input text.
// Default: `[\p{L}\p{N}_']+|[.,!?;:]`
func WithSeparatorRegex(splitRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.separatorRegex = regexp.MustCompile(splitRegex)
	}
}

// WithEOCRegex sets the regex string to use when deciding whether a token is an EOC token or not.
// Default: `^[.!?]$`
func WithEOCRegex(eocRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.eocRegex = regexp.MustCompile(eocRegex)
	}
}

// WithFilterRegex drops every token that does not match filterRegex. EOC
// tokens are never dropped. An empty string disables filtering.
// Default: disabled
func WithFilterRegex(filterRegex string) Option {
	return func(t *DefaultTokenizer) {
		if filterRegex == "" {
			t.filterRegex = nil
			return
		}
		t.filterRegex = regexp.MustCompile(filterRegex)
	}
}

// WithCaseFolding sets whether tokens are case-folded.
// Default: true
func WithCaseFolding(fold bool) Option {
	return func(t *DefaultTokenizer) {
		t.foldCase = fold
	}
}

// WithParagraphBreaks sets whether a blank line ends the current sentence.
// Default: true
func WithParagraphBreaks(enabled bool) Option {
	return func(t *DefaultTokenizer) {
		t.paragraphBreaks = enabled
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		// Runs of letters, digits, underscores and apostrophes, OR single
		// instances of common punctuation.
		separatorRegex: regexp.MustCompile(`[\p{L}\p{N}_']+|[.,!?;:]`),
		// Sentence-ending punctuation marks.
		eocRegex:        regexp.MustCompile(`^[.!?]$`),
		foldCase:        true,
		paragraphBreaks: true,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NewStream Returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)

	s := &DefaultStreamTokenizer{
		scanner:         scanner,
		splitRegex:      t.separatorRegex,
		eosRegex:        t.eocRegex,
		filterRegex:     t.filterRegex,
		paragraphBreaks: t.paragraphBreaks,
	}
	// A Caser is stateful, so every stream gets its own.
	if t.foldCase {
		caser := cases.Fold()
		s.fold = &caser
	}
	return s
}

// DefaultStreamTokenizer is the default implementation of the StreamTokenizer interface.
// It uses a bufio.Scanner and regular expressions to read and tokenize a stream.
type DefaultStreamTokenizer struct {
	scanner         *bufio.Scanner
	buffer          []string
	splitRegex      *regexp.Regexp
	eosRegex        *regexp.Regexp
	filterRegex     *regexp.Regexp
	fold            *cases.Caser
	paragraphBreaks bool
	pendingBreak    bool
}

// Next returns the next token from the stream. It returns a Token and a nil error on
// success. When the stream is exhausted, it returns a nil Token and io.EOF.
// Any other error indicates a problem reading from the underlying stream.
func (s *DefaultStreamTokenizer) Next() (*Token, error) {
	for {
		for len(s.buffer) == 0 { // Loop until we have tokens
			if !s.scanner.Scan() {
				if err := s.scanner.Err(); err != nil {
					return nil, err
				}
				return nil, io.EOF
			}
			line := s.scanner.Text()
			if strings.TrimSpace(line) == "" {
				if s.paragraphBreaks && s.pendingBreak {
					s.pendingBreak = false
					return &Token{EOC: true}, nil
				}
				continue
			}
			s.buffer = s.splitRegex.FindAllString(norm.NFC.String(line), -1)
		}

		// We have tokens in the buffer. Process the next one.
		word := s.buffer[0]
		s.buffer = s.buffer[1:] // Consume the token

		if s.fold != nil {
			word = s.fold.String(word)
		}
		eoc := s.eosRegex.MatchString(word)
		if !eoc && s.filterRegex != nil && !s.filterRegex.MatchString(word) {
			continue
		}
		// A break is only worth emitting when text has been seen since the last boundary.
		s.pendingBreak = !eoc

		// Return the word and whether it is an EOC token or not
		return &Token{Text: word, EOC: eoc}, nil
	}
}
