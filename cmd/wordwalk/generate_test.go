package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/CTAG07/wordwalk/pkg/markov"
)

const testCorpus = `One fish two fish red fish blue fish.
Black fish blue fish old fish new fish.
This one has a little star. This one has a little car.
Say what a lot of fish there are.`

func buildTestModel(t *testing.T) *markov.TransitionModel {
	t.Helper()
	reader, err := markov.NewReader(markov.NewDefaultTokenizer(), markov.WithOrder(1))
	if err != nil {
		t.Fatal(err)
	}
	if err = reader.ReadString(context.Background(), testCorpus); err != nil {
		t.Fatal(err)
	}
	model, err := reader.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return model
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestGenerateSentences(t *testing.T) {
	model := buildTestModel(t)
	ctx := context.Background()

	for _, workers := range []int64{1, 3, 20} {
		g := &generateFlags{count: 7, temperature: 1, workers: workers, seed: 42, seeded: true}

		first, err := generateSentences(ctx, model, g, discardLogger)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(first) != 7 {
			t.Fatalf("workers=%d: got %d sentences, want 7", workers, len(first))
		}
		for _, s := range first {
			if s == "" {
				t.Errorf("workers=%d: empty sentence", workers)
			}
		}

		second, err := generateSentences(ctx, model, g, discardLogger)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(first, second) {
			t.Errorf("workers=%d: seeded output is not reproducible:\n%q\n%q", workers, first, second)
		}
	}
}

func TestGenerateSentencesMaxLength(t *testing.T) {
	model := buildTestModel(t)
	g := &generateFlags{count: 50, maxLength: 3, temperature: 1, workers: 2}

	sentences, err := generateSentences(context.Background(), model, g, discardLogger)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range sentences {
		if n := len(strings.Fields(s)); n > 3 {
			t.Errorf("sentence %q has %d tokens, want at most 3", s, n)
		}
	}
}

func TestStreamSentences(t *testing.T) {
	model := buildTestModel(t)
	g := &generateFlags{count: 4, temperature: 1, seed: 9, seeded: true}

	var buf bytes.Buffer
	if err := streamSentences(context.Background(), &buf, model, g, discardLogger); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), buf.String())
	}

	// The stream walks the same path as a generator with the same seed.
	gen, err := markov.NewGenerator(model, g.options(0)...)
	if err != nil {
		t.Fatal(err)
	}
	want, err := gen.Generate(context.Background(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(lines, want) {
		t.Errorf("stream output %q, want %q", lines, want)
	}
}

var errClosedPipe = errors.New("closed pipe")

type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) { return 0, errClosedPipe }

func TestStreamSentencesWriteError(t *testing.T) {
	model := buildTestModel(t)
	g := &generateFlags{count: 5, maxLength: 20, temperature: 1, seed: 3, seeded: true}

	before := runtime.NumGoroutine()
	err := streamSentences(context.Background(), closedWriter{}, model, g, discardLogger)
	if !errors.Is(err, errClosedPipe) {
		t.Fatalf("streamSentences() error = %v, want %v", err, errClosedPipe)
	}

	// The generator goroutine must not stay blocked on an unread token.
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("%d goroutines still running, started with %d", runtime.NumGoroutine(), before)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestFormatSentences(t *testing.T) {
	data, err := formatSentences([]string{"one fish", "two fish"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one fish\ntwo fish\n" {
		t.Errorf("plain output = %q", data)
	}

	data, err = formatSentences([]string{"one fish"}, true)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Sentences []string `json:"sentences"`
	}
	if err = json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", data, err)
	}
	if !slices.Equal(decoded.Sentences, []string{"one fish"}) {
		t.Errorf("decoded = %v", decoded.Sentences)
	}
}
