package markov

import (
	"context"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// buildModel reads text into a fresh Reader and returns the built model.
func buildModel(t *testing.T, text string, opts ...ReaderOption) *TransitionModel {
	t.Helper()
	r, err := NewReader(NewDefaultTokenizer(), opts...)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	ctx := context.Background()
	if err := r.ReadString(ctx, text); err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}
	m, err := r.Build(ctx)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

// newSeededGenerator is a convenience helper for reproducible generation.
func newSeededGenerator(t *testing.T, m *TransitionModel, opts ...GenerateOption) *Generator {
	t.Helper()
	g, err := NewGenerator(m, append([]GenerateOption{WithSeed(42)}, opts...)...)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

// successorMap flattens a prefix's successors for easy comparison.
func successorMap(m *TransitionModel, tokens ...string) map[string]float64 {
	succ, ok := m.Successors(NewPrefix(tokens...))
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(succ))
	for _, s := range succ {
		out[s.Item] = s.Weight
	}
	return out
}

const fishCorpus = "one fish two fish. red fish blue fish."

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
