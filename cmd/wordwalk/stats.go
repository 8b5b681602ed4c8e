package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
)

func statsCmd() *cli.Command {
	var b buildFlags

	return &cli.Command{
		Name:      "stats",
		Usage:     "Build a model from a corpus and print its statistics as JSON",
		ArgsUsage: "<path>",
		Flags:     b.flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			applyBuildConfig(cmd, cfg.Build, &b)

			path := cmd.Args().First()
			if path == "" && !b.useDB {
				return cli.ShowSubcommandHelp(cmd)
			}

			model, err := buildModel(ctx, logger, &b, path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: build model: %v", err), 1)
			}

			data, err := json.MarshalIndent(model.Stats(), "", "  ")
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: encode stats: %v", err), 1)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, string(data))
			return err
		},
	}
}
