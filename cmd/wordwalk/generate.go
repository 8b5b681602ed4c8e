package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/natefinch/atomic"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/CTAG07/wordwalk/pkg/markov"
)

type generateFlags struct {
	maxLength   int64
	count       int64
	temperature float64
	topK        int64
	workers     int64
	seed        uint64
	seeded      bool
	out         string
	json        bool
	stream      bool
}

func (g *generateFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "max-length",
			Aliases:     []string{"l"},
			Usage:       "maximum tokens per sentence (0 uses the corpus average sentence length)",
			Destination: &g.maxLength,
		},
		&cli.Int64Flag{
			Name:        "count",
			Aliases:     []string{"c"},
			Usage:       "number of sentences to generate",
			Value:       10,
			Destination: &g.count,
		},
		&cli.FloatFlag{
			Name:        "temperature",
			Aliases:     []string{"t"},
			Usage:       "sampling temperature (1 is proportional, 0 always picks the most frequent)",
			Value:       1.0,
			Destination: &g.temperature,
		},
		&cli.Int64Flag{
			Name:        "top-k",
			Usage:       "sample only from the k most frequent candidates (0 disables)",
			Destination: &g.topK,
		},
		&cli.Int64Flag{
			Name:        "workers",
			Usage:       "number of generators sharing the model",
			Value:       1,
			Destination: &g.workers,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "random seed for reproducible output",
			Destination: &g.seed,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "write sentences to this file instead of stdout",
			Destination: &g.out,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print sentences as JSON",
			Destination: &g.json,
		},
		&cli.BoolFlag{
			Name:        "stream",
			Usage:       "print each token as soon as it is generated",
			Destination: &g.stream,
		},
	}
}

// options returns the generator options for one worker. Seeded workers get
// consecutive seeds so their output differs but stays reproducible.
func (g *generateFlags) options(worker int) []markov.GenerateOption {
	opts := []markov.GenerateOption{
		markov.WithMaxLength(int(g.maxLength)),
		markov.WithTemperature(g.temperature),
		markov.WithTopK(int(g.topK)),
	}
	if g.seeded {
		opts = append(opts, markov.WithSeed(g.seed+uint64(worker)))
	}
	return opts
}

func generateCmd() *cli.Command {
	var (
		b buildFlags
		g generateFlags
	)

	return &cli.Command{
		Name:      "generate",
		Usage:     "Build a model from a corpus and generate sentences",
		ArgsUsage: "<path>",
		Flags:     append(b.flags(), g.flags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			applyBuildConfig(cmd, cfg.Build, &b)
			applyGenerateConfig(cmd, cfg.Generate, &g)

			path := cmd.Args().First()
			if path == "" && !b.useDB {
				return cli.ShowSubcommandHelp(cmd)
			}
			if g.count < 1 {
				return cli.Exit("error: --count must be at least 1", 1)
			}

			model, err := buildModel(ctx, logger, &b, path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: build model: %v", err), 1)
			}

			if g.stream {
				if err = streamSentences(ctx, cmd.Root().Writer, model, &g, logger); err != nil {
					return cli.Exit(fmt.Sprintf("error: generate: %v", err), 1)
				}
				return nil
			}

			sentences, err := generateSentences(ctx, model, &g, logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: generate: %v", err), 1)
			}
			data, err := formatSentences(sentences, g.json)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: format output: %v", err), 1)
			}

			if g.out != "" {
				if err = atomic.WriteFile(g.out, bytes.NewReader(data)); err != nil {
					return cli.Exit(fmt.Sprintf("error: write %s: %v", g.out, err), 1)
				}
				logger.Info("Sentences written", slog.String("path", g.out), slog.Int("count", len(sentences)))
				return nil
			}
			_, err = cmd.Root().Writer.Write(data)
			return err
		},
	}
}

// generateSentences produces g.count sentences. With more than one worker
// the count is split across generators that share the model, and the output
// is ordered by worker.
func generateSentences(ctx context.Context, model *markov.TransitionModel, g *generateFlags, logger *slog.Logger) ([]string, error) {
	count := int(g.count)
	workers := min(max(int(g.workers), 1), count)

	if workers == 1 {
		gen, err := markov.NewGenerator(model, g.options(0)...)
		if err != nil {
			return nil, err
		}
		gen.SetLogger(logger)

		sentences := make([]string, 0, count)
		for sentence, err := range gen.Sentences(ctx) {
			if err != nil {
				return nil, err
			}
			sentences = append(sentences, sentence)
			if len(sentences) == count {
				break
			}
		}
		return sentences, nil
	}

	results := make([][]string, workers)
	eg, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := count / workers
		if w < count%workers {
			n++
		}
		eg.Go(func() error {
			gen, err := markov.NewGenerator(model, g.options(w)...)
			if err != nil {
				return err
			}
			gen.SetLogger(logger.With(slog.Int("worker", w)))
			results[w], err = gen.Generate(ctx, n)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(results...), nil
}

// streamSentences writes tokens to w as the walk produces them.
func streamSentences(ctx context.Context, w io.Writer, model *markov.TransitionModel, g *generateFlags, logger *slog.Logger) error {
	gen, err := markov.NewGenerator(model, g.options(0)...)
	if err != nil {
		return err
	}
	gen.SetLogger(logger)

	for range g.count {
		if err = streamSentence(ctx, w, gen); err != nil {
			return err
		}
	}
	return nil
}

// streamSentence writes one sentence followed by a newline. Returning early
// cancels the walk so the stream goroutine exits.
func streamSentence(ctx context.Context, w io.Writer, gen *markov.Generator) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tokens, err := gen.GenerateStream(ctx)
	if err != nil {
		return err
	}
	first := true
	for token := range tokens {
		if token.EOC {
			break
		}
		if !first {
			if _, err = io.WriteString(w, " "); err != nil {
				return err
			}
		}
		first = false
		if _, err = io.WriteString(w, token.Text); err != nil {
			return err
		}
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func formatSentences(sentences []string, asJSON bool) ([]byte, error) {
	if asJSON {
		data, err := json.MarshalIndent(struct {
			Sentences []string `json:"sentences"`
		}{sentences}, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return []byte(strings.Join(sentences, "\n") + "\n"), nil
}
