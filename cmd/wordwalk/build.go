package main

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/CTAG07/wordwalk/internal/corpus"
	"github.com/CTAG07/wordwalk/pkg/markov"
)

// buildModel reads the corpus at path, plus the stored corpus when requested,
// into a single model.
func buildModel(ctx context.Context, logger *slog.Logger, b *buildFlags, path string) (*markov.TransitionModel, error) {
	if b.filter != "" {
		if _, err := regexp.Compile(b.filter); err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	tokenizer := markov.NewDefaultTokenizer(
		markov.WithFilterRegex(b.filter),
		markov.WithCaseFolding(!b.keepCase),
	)
	reader, err := markov.NewReader(tokenizer,
		markov.WithOrder(int(b.order)),
		markov.WithNormalization(b.normalize),
		markov.WithPruning(int(b.minFreq)),
	)
	if err != nil {
		return nil, err
	}
	reader.SetLogger(logger)

	var docs []corpus.Document
	if b.useDB {
		store, closeStore, err := openStore(ctx, databasePath, logger)
		if err != nil {
			return nil, err
		}
		stored, err := store.Documents(ctx)
		closeStore()
		if err != nil {
			return nil, fmt.Errorf("failed to read stored documents: %w", err)
		}
		docs = append(docs, stored...)
	}
	if path != "" {
		loaded, err := corpus.Load(ctx, path, corpus.LoadOptions{
			Recursive: b.recursive,
			Workers:   b.loadWorkers,
		})
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}
	logger.Info("Corpus loaded", slog.Int("documents", len(docs)))

	if err = corpus.Feed(ctx, reader, docs); err != nil {
		return nil, err
	}
	return reader.Build(ctx)
}
