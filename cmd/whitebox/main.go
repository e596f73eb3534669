// Command whitebox explains the predictions of a pre-trained linear text
// classifier on a labelled review corpus.
//
// Usage:
//
//	whitebox explain --model model.yaml --data aclImdb --split test -k 3
//	whitebox pattern --config whitebox.toml --terms 20
//	whitebox dumpconfig --config whitebox.toml
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	modelFlag = &cli.StringFlag{
		Name:  "model",
		Usage: "YAML model bundle (vocabulary, idf, coefficients)",
	}
	dataFlag = &cli.StringFlag{
		Name:  "data",
		Usage: "corpus root containing <split>/{neg,pos}/*.txt",
	}
	splitFlag = &cli.StringFlag{
		Name:  "split",
		Usage: "corpus split (train or test)",
	}
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "maximum documents per label (0 = all)",
	}
	rawHTMLFlag = &cli.BoolFlag{
		Name:  "raw-html",
		Usage: "keep review markup instead of stripping it",
	}
	topKFlag = &cli.IntFlag{
		Name:    "top-k",
		Aliases: []string{"k"},
		Usage:   "tokens explained per document",
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "parallel workers (0 = GOMAXPROCS)",
	}
	policyFlag = &cli.StringFlag{
		Name:  "feature-policy",
		Usage: "zero-variance feature columns: keep or fail",
	}
	partialFlag = &cli.BoolFlag{
		Name:  "partial",
		Usage: "return fewer than k tokens for short documents",
	}
	predictedFlag = &cli.BoolFlag{
		Name:  "predicted-class",
		Usage: "score each document with the pattern of its predicted class",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "report format: table, json or proto",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "report file (default stdout)",
	}
	termsFlag = &cli.IntFlag{
		Name:  "terms",
		Usage: "pattern terms listed per class (0 = none)",
	}
	highlightFlag = &cli.StringFlag{
		Name:  "highlight",
		Usage: "write highlighted documents to this HTML file",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log.level",
		Usage: "log level (panic, fatal, error, warn, info, debug, trace)",
	}
	logJSONFlag = &cli.BoolFlag{
		Name:  "log.json",
		Usage: "log as JSON",
	}
)

var (
	commonFlags = []cli.Flag{
		configFlag,
		modelFlag,
		dataFlag,
		splitFlag,
		limitFlag,
		rawHTMLFlag,
		workersFlag,
		policyFlag,
		predictedFlag,
		formatFlag,
		outputFlag,
		termsFlag,
		logLevelFlag,
		logJSONFlag,
	}
	explainFlags = append([]cli.Flag{topKFlag, partialFlag, highlightFlag}, commonFlags...)
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "whitebox",
		Usage: "explain linear text classifier predictions with pattern-based relevance",
		Commands: []*cli.Command{
			{
				Name:   "explain",
				Usage:  "explain every document of a corpus split",
				Flags:  explainFlags,
				Action: explainAction,
			},
			{
				Name:   "pattern",
				Usage:  "print the strongest global pattern terms per class",
				Flags:  commonFlags,
				Action: patternAction,
			},
			{
				Name:   "dumpconfig",
				Usage:  "print the effective configuration as TOML",
				Flags:  explainFlags,
				Action: dumpConfigAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
