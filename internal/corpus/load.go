package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LoadOptions controls how Load walks the filesystem.
type LoadOptions struct {
	// Recursive descends into subdirectories when loading a directory.
	Recursive bool
	// Workers bounds the number of files extracted at once. Values below 1
	// mean runtime.NumCPU().
	Workers int
}

// Load returns the documents found at path. A regular file is loaded on its
// own; a file with an unknown extension is read as plain text. A directory
// yields every supported file in it, sorted by path so that building from the
// same directory is deterministic. Hidden files and directories are skipped.
func Load(ctx context.Context, path string, opts LoadOptions) ([]Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []Document{doc}, nil
	}

	paths, err := listDir(path, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, path)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	docs := make([]Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := LoadFile(p)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// LoadFile extracts the text of a single file.
func LoadFile(path string) (Document, error) {
	extractor, err := ForFile(path)
	if errors.Is(err, ErrUnsupported) {
		extractor = TextExtractor{}
	}

	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	text, err := extractor.Extract(f, filepath.Base(path))
	if err != nil {
		return Document{}, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return Document{Name: path, Text: text, Size: len(text)}, nil
}

func listDir(root string, recursive bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsSupportedExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
