package main

import "github.com/urfave/cli/v3"

var (
	configFile   string
	logLevel     string
	databasePath string
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to a JSON or YAML config file; created with defaults if missing",
			Value:       defaultConfigPath(),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "database",
			Usage:       "path to the corpus document database",
			Value:       "wordwalk.db",
			Destination: &databasePath,
		},
	}
}

// buildFlags configure how the model is read from the corpus.
type buildFlags struct {
	order       int64
	normalize   bool
	minFreq     int64
	recursive   bool
	useDB       bool
	filter      string
	keepCase    bool
	loadWorkers int
}

func (b *buildFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "order",
			Aliases:     []string{"n"},
			Usage:       "number of preceding tokens used as context",
			Value:       2,
			Destination: &b.order,
		},
		&cli.BoolFlag{
			Name:        "normalize",
			Usage:       "store probabilities instead of raw counts",
			Destination: &b.normalize,
		},
		&cli.Int64Flag{
			Name:        "min-freq",
			Usage:       "drop chain links seen this many times or fewer (0 keeps all)",
			Destination: &b.minFreq,
		},
		&cli.BoolFlag{
			Name:        "recursive",
			Aliases:     []string{"r"},
			Usage:       "descend into subdirectories of the source path",
			Destination: &b.recursive,
		},
		&cli.BoolFlag{
			Name:        "db",
			Usage:       "include the documents in the corpus database",
			Destination: &b.useDB,
		},
		&cli.StringFlag{
			Name:        "filter",
			Usage:       "drop tokens that do not match this regular expression",
			Destination: &b.filter,
		},
		&cli.BoolFlag{
			Name:        "keep-case",
			Usage:       "do not case-fold tokens",
			Destination: &b.keepCase,
		},
	}
}
