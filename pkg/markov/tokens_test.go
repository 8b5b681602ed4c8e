package markov

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// drain reads every token from a stream.
func drain(t *testing.T, s StreamTokenizer) []Token {
	t.Helper()
	var tokens []Token
	for {
		tok, err := s.Next()
		if errors.Is(err, io.EOF) {
			return tokens
		}
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		tokens = append(tokens, *tok)
	}
}

func TestDefaultTokenizer(t *testing.T) {
	testCases := []struct {
		name  string
		opts  []Option
		input string
		want  []Token
	}{
		{
			name:  "Words and terminal punctuation",
			input: "One fish, two fish!",
			want: []Token{
				{Text: "one"}, {Text: "fish"}, {Text: ","}, {Text: "two"}, {Text: "fish"}, {Text: "!", EOC: true},
			},
		},
		{
			name:  "Case folding disabled",
			opts:  []Option{WithCaseFolding(false)},
			input: "Red Fish.",
			want:  []Token{{Text: "Red"}, {Text: "Fish"}, {Text: ".", EOC: true}},
		},
		{
			name:  "Unicode letters and apostrophes",
			input: "Café don't STRASSE",
			want:  []Token{{Text: "café"}, {Text: "don't"}, {Text: "strasse"}},
		},
		{
			name:  "Blank line ends a sentence",
			input: "a heading\n\nbody text.\n\n\n",
			want: []Token{
				{Text: "a"}, {Text: "heading"}, {EOC: true}, {Text: "body"}, {Text: "text"}, {Text: ".", EOC: true},
			},
		},
		{
			name:  "Paragraph breaks disabled",
			opts:  []Option{WithParagraphBreaks(false)},
			input: "a heading\n\nbody",
			want:  []Token{{Text: "a"}, {Text: "heading"}, {Text: "body"}},
		},
		{
			name:  "Noise filter",
			opts:  []Option{WithFilterRegex(`[\p{L}\p{N}]`)},
			input: "well, then; go.",
			want:  []Token{{Text: "well"}, {Text: "then"}, {Text: "go"}, {Text: ".", EOC: true}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tok := NewDefaultTokenizer(tc.opts...)
			got := drain(t, tok.NewStream(strings.NewReader(tc.input)))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tokens = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDefaultTokenizerLongLine(t *testing.T) {
	t.Run("words", func(t *testing.T) {
		// Over two buffers of text without a single newline.
		n := 2*maxLineSize/len("word ") + 1000
		long := strings.Repeat("word ", n) + "end."
		got := drain(t, NewDefaultTokenizer().NewStream(strings.NewReader(long)))

		if len(got) != n+2 {
			t.Fatalf("got %d tokens, want %d", len(got), n+2)
		}
		for i, tok := range got[:n] {
			if tok.Text != "word" || tok.EOC {
				t.Fatalf("token %d = %+v, want a whole word", i, tok)
			}
		}
		if got[n].Text != "end" || got[n+1] != (Token{Text: ".", EOC: true}) {
			t.Errorf("tail = %+v", got[n:])
		}
	})

	t.Run("no whitespace", func(t *testing.T) {
		long := strings.Repeat("é", maxLineSize/2+1)
		got := drain(t, NewDefaultTokenizer().NewStream(strings.NewReader(long)))

		var total int
		for _, tok := range got {
			if !utf8.ValidString(tok.Text) {
				t.Fatalf("token of %d bytes is split inside a rune", len(tok.Text))
			}
			total += len(tok.Text)
		}
		if total != len(long) {
			t.Errorf("tokens hold %d bytes, want %d", total, len(long))
		}
	})
}
