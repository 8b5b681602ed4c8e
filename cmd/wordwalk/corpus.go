package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/CTAG07/wordwalk/internal/corpus"
)

func corpusCmd() *cli.Command {
	return &cli.Command{
		Name:  "corpus",
		Usage: "Manage the stored corpus documents",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowSubcommandHelp(cmd)
		},
		Commands: []*cli.Command{
			corpusAddCmd(),
			corpusListCmd(),
			corpusRemoveCmd(),
		},
	}
}

func corpusAddCmd() *cli.Command {
	var (
		recursive bool
		workers   int64
	)

	return &cli.Command{
		Name:      "add",
		Usage:     "Extract documents and add them to the corpus database",
		ArgsUsage: "<path>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "recursive",
				Aliases:     []string{"r"},
				Usage:       "descend into subdirectories",
				Destination: &recursive,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Usage:       "number of documents extracted at once (0 uses every CPU)",
				Destination: &workers,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.ShowSubcommandHelp(cmd)
			}
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			var docs []corpus.Document
			for _, path := range cmd.Args().Slice() {
				loaded, err := corpus.Load(ctx, path, corpus.LoadOptions{Recursive: recursive, Workers: int(workers)})
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: load %s: %v", path, err), 1)
				}
				docs = append(docs, loaded...)
			}

			store, closeStore, err := openStore(ctx, databasePath, logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer closeStore()

			added, err := store.AddDocuments(ctx, docs)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			for _, doc := range added {
				_, _ = fmt.Fprintf(cmd.Root().Writer, "%s\t%s\n", doc.ID, doc.Name)
			}
			return nil
		},
	}
}

func corpusListCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:  "list",
		Usage: "List the stored corpus documents",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the list as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(ctx, databasePath, logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer closeStore()

			docs, err := store.List(ctx)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			out := cmd.Root().Writer
			if asJSON {
				if docs == nil {
					docs = []corpus.Document{}
				}
				data, err := json.MarshalIndent(docs, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tSIZE\tADDED")
			for _, doc := range docs {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", doc.ID, doc.Name, doc.Size, doc.AddedAt.Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func corpusRemoveCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove documents from the corpus database",
		ArgsUsage: "<id>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.ShowSubcommandHelp(cmd)
			}
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(ctx, databasePath, logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer closeStore()

			for _, id := range cmd.Args().Slice() {
				if err = store.RemoveDocument(ctx, id); err != nil {
					if errors.Is(err, corpus.ErrNotFound) {
						return cli.Exit(fmt.Sprintf("error: no document with id %s", id), 1)
					}
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
			}
			return nil
		},
	}
}
