package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/net/html"

	"github.com/katalvlaran/whitebox/corpus"
	"github.com/katalvlaran/whitebox/linear"
	"github.com/katalvlaran/whitebox/pipeline"
	"github.com/katalvlaran/whitebox/report"
)

// makeConfig loads --config and applies every flag set on the command line.
func makeConfig(c *cli.Context) (Config, error) {
	cfg, err := loadConfig(c.String(configFlag.Name))
	if err != nil {
		return Config{}, err
	}
	if c.IsSet(modelFlag.Name) {
		cfg.Model = c.String(modelFlag.Name)
	}
	if c.IsSet(dataFlag.Name) {
		cfg.Data.Root = c.String(dataFlag.Name)
	}
	if c.IsSet(splitFlag.Name) {
		cfg.Data.Split = c.String(splitFlag.Name)
	}
	if c.IsSet(limitFlag.Name) {
		cfg.Data.Limit = c.Int(limitFlag.Name)
	}
	if c.IsSet(rawHTMLFlag.Name) {
		cfg.Data.RawHTML = c.Bool(rawHTMLFlag.Name)
	}
	if c.IsSet(topKFlag.Name) {
		cfg.Explain.TopK = c.Int(topKFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		cfg.Explain.Workers = c.Int(workersFlag.Name)
	}
	if c.IsSet(policyFlag.Name) {
		cfg.Explain.FeaturePolicy = c.String(policyFlag.Name)
	}
	if c.IsSet(partialFlag.Name) {
		cfg.Explain.PartialTopK = c.Bool(partialFlag.Name)
	}
	if c.IsSet(predictedFlag.Name) {
		cfg.Explain.PredictedClass = c.Bool(predictedFlag.Name)
	}
	if c.IsSet(formatFlag.Name) {
		cfg.Output.Format = c.String(formatFlag.Name)
	}
	if c.IsSet(outputFlag.Name) {
		cfg.Output.Path = c.String(outputFlag.Name)
	}
	if c.IsSet(termsFlag.Name) {
		cfg.Output.PatternTerms = c.Int(termsFlag.Name)
	}
	if c.IsSet(highlightFlag.Name) {
		cfg.Output.Highlight = c.String(highlightFlag.Name)
	}
	if c.IsSet(logLevelFlag.Name) {
		cfg.Log.Level = c.String(logLevelFlag.Name)
	}
	if c.IsSet(logJSONFlag.Name) {
		cfg.Log.JSON = c.Bool(logJSONFlag.Name)
	}

	return cfg, nil
}

// newLogger builds the command logger; cfg must be validated.
func newLogger(cfg Config, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	level, _ := logrus.ParseLevel(cfg.Log.Level)
	log.SetLevel(level)
	if cfg.Log.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}

// prepare resolves the configuration and loads the model and the corpus.
func prepare(c *cli.Context) (Config, *logrus.Logger, *linear.Bundle, []corpus.Document, error) {
	cfg, err := makeConfig(c)
	if err != nil {
		return Config{}, nil, nil, nil, err
	}
	if err = cfg.validate(); err != nil {
		return Config{}, nil, nil, nil, err
	}
	log := newLogger(cfg, c.App.ErrWriter)

	bundle, err := linear.Load(cfg.Model)
	if err != nil {
		return Config{}, nil, nil, nil, err
	}
	log.WithFields(logrus.Fields{
		"model":   cfg.Model,
		"classes": bundle.Model.Classes(),
		"terms":   bundle.Vocabulary.Len(),
	}).Info("model loaded")

	var copts []corpus.Option
	if cfg.Data.Limit > 0 {
		copts = append(copts, corpus.WithLimit(cfg.Data.Limit))
	}
	if cfg.Data.RawHTML {
		copts = append(copts, corpus.WithRawHTML())
	}
	docs, err := corpus.LoadDir(cfg.Data.Root, cfg.Data.Split, copts...)
	if err != nil {
		return Config{}, nil, nil, nil, err
	}
	log.WithFields(logrus.Fields{"root": cfg.Data.Root, "split": cfg.Data.Split, "documents": len(docs)}).Info("corpus loaded")

	return cfg, log, bundle, docs, nil
}

func pipelineOptions(cfg Config, log *logrus.Logger, b *linear.Bundle) pipeline.Options {
	return pipeline.Options{
		TopK:          cfg.Explain.TopK,
		PositiveClass: &b.PositiveClass,
		Highlight:     cfg.Output.Highlight != "",
		Explain:       cfg.explainOptions(),
		Logger:        log,
	}
}

// interruptible cancels the command context on SIGINT.
func interruptible(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt)
}

func explainAction(c *cli.Context) error {
	cfg, log, bundle, docs, err := prepare(c)
	if err != nil {
		return err
	}
	ctx, stop := interruptible(c)
	defer stop()

	res, err := pipeline.Explain(ctx, docs, bundle.Model, bundle.Vectorizer, pipelineOptions(cfg, log, bundle))
	if err != nil {
		return err
	}
	summary, err := res.Summary(cfg.Output.PatternTerms)
	if err != nil {
		return err
	}
	if cfg.Output.Highlight != "" {
		if err = writeHighlights(cfg.Output.Highlight, res); err != nil {
			return err
		}
		log.WithField("path", cfg.Output.Highlight).Info("highlights written")
	}

	return writeSummary(c, cfg, summary)
}

func patternAction(c *cli.Context) error {
	cfg, log, bundle, docs, err := prepare(c)
	if err != nil {
		return err
	}
	ctx, stop := interruptible(c)
	defer stop()

	res, err := pipeline.Pattern(ctx, docs, bundle.Model, bundle.Vectorizer, pipelineOptions(cfg, log, bundle))
	if err != nil {
		return err
	}
	summary, err := res.Summary(cfg.Output.PatternTerms)
	if err != nil {
		return err
	}

	return writeSummary(c, cfg, summary)
}

func dumpConfigAction(c *cli.Context) error {
	cfg, err := makeConfig(c)
	if err != nil {
		return err
	}

	return toml.NewEncoder(c.App.Writer).Encode(cfg)
}

// writeSummary renders s in the configured format to the report file or to
// the application writer.
func writeSummary(c *cli.Context, cfg Config, s report.Summary) (err error) {
	w := c.App.Writer
	if cfg.Output.Path != "" {
		f, ferr := os.Create(cfg.Output.Path)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch cfg.Output.Format {
	case formatJSON:
		b, err := report.MarshalJSON(s, true)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case formatProto:
		b, err := report.MarshalProto(s)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		if len(s.Documents) > 0 {
			report.WriteDocuments(w, s.Documents)
		}
		if len(s.Patterns) > 0 {
			report.WritePattern(w, s.Patterns)
		}
		return nil
	}
}

// writeHighlights writes one <article> per document with its marked text.
func writeHighlights(path string, res *pipeline.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>whitebox</title></head><body>")
	for i, doc := range res.Documents {
		e := res.Explanations[i]
		fmt.Fprintf(w, "<article id=%q>\n<h3>%s: %s (%s)</h3>\n<p>%s</p>\n</article>\n",
			html.EscapeString(doc.ID),
			html.EscapeString(doc.ID),
			html.EscapeString(res.Classes[e.Predicted]),
			e.PredictionSign,
			res.Highlighted[i])
	}
	fmt.Fprintln(w, "</body></html>")

	return w.Flush()
}
