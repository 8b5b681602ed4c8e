package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CTAG07/wordwalk/pkg/markov"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func createCorpusDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "# Fish\n\nRed fish blue fish.\n")
	writeFile(t, filepath.Join(dir, "a.txt"), "One fish two fish.")
	writeFile(t, filepath.Join(dir, "image.png"), "\x89PNG")
	writeFile(t, filepath.Join(dir, ".hidden.txt"), "secret words.")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "Old fish new fish.")
	writeFile(t, filepath.Join(dir, ".git", "d.txt"), "never read.")
	return dir
}

func names(docs []Document) []string {
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = filepath.ToSlash(doc.Name)
	}
	return out
}

func TestLoadDirectory(t *testing.T) {
	dir := createCorpusDir(t)
	ctx := context.Background()
	base := filepath.ToSlash(dir)

	docs, err := Load(ctx, dir, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{base + "/a.txt", base + "/b.md"}, names(docs))
	assert.Equal(t, "One fish two fish.", docs[0].Text)
	assert.Equal(t, len(docs[0].Text), docs[0].Size)
	assert.Contains(t, docs[1].Text, "Red fish blue fish.")

	docs, err = Load(ctx, dir, LoadOptions{Recursive: true, Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{base + "/a.txt", base + "/b.md", base + "/sub/c.txt"}, names(docs))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.log")
	writeFile(t, path, "Plain words here.")

	docs, err := Load(context.Background(), path, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, path, docs[0].Name)
	assert.Equal(t, "Plain words here.", docs[0].Text)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, filepath.Join(t.TempDir(), "missing"), LoadOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(ctx, t.TempDir(), LoadOptions{})
	assert.ErrorIs(t, err, ErrNoDocuments)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Load(cancelled, createCorpusDir(t), LoadOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFeed(t *testing.T) {
	docs, err := Load(context.Background(), createCorpusDir(t), LoadOptions{Recursive: true})
	require.NoError(t, err)

	reader, err := markov.NewReader(markov.NewDefaultTokenizer(), markov.WithOrder(1))
	require.NoError(t, err)
	require.NoError(t, Feed(context.Background(), reader, docs))

	model, err := reader.Build(context.Background())
	require.NoError(t, err)

	// "fish" (heading), plus one sentence per document.
	assert.Equal(t, 4, model.SentenceCount())
	successors, ok := model.Successors(markov.NewPrefix("fish"))
	require.True(t, ok)
	assert.NotEmpty(t, successors)

	_, err = reader.Build(context.Background())
	assert.ErrorIs(t, err, markov.ErrReaderBuilt)
	assert.ErrorIs(t, Feed(context.Background(), reader, docs), markov.ErrReaderBuilt)
}
