package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/whitebox/corpus"
	"github.com/katalvlaran/whitebox/explain"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatProto = "proto"
)

var errConfig = errors.New("whitebox: invalid configuration")

// Config is the TOML configuration file. Command-line flags override it.
type Config struct {
	Model   string        `toml:"model"`
	Data    DataConfig    `toml:"data"`
	Explain ExplainConfig `toml:"explain"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
}

// DataConfig locates the labelled review corpus.
type DataConfig struct {
	Root    string `toml:"root"`
	Split   string `toml:"split"`
	Limit   int    `toml:"limit"` // per label, 0 = all
	RawHTML bool   `toml:"raw_html"`
}

// ExplainConfig tunes pattern estimation and per-document explanations.
type ExplainConfig struct {
	TopK           int     `toml:"top_k"`
	Workers        int     `toml:"workers"`
	FeaturePolicy  string  `toml:"feature_policy"` // keep | fail
	PartialTopK    bool    `toml:"partial_top_k"`
	PredictedClass bool    `toml:"predicted_class"`
	SimplexEpsilon float64 `toml:"simplex_epsilon"`
}

// OutputConfig selects the report format and destinations.
type OutputConfig struct {
	Format       string `toml:"format"` // table | json | proto
	Path         string `toml:"path"`   // empty = stdout
	PatternTerms int    `toml:"pattern_terms"`
	Highlight    string `toml:"highlight"` // HTML file, empty = none
}

// LogConfig configures logrus.
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

func defaultConfig() Config {
	return Config{
		Data: DataConfig{Split: corpus.SplitTest},
		Explain: ExplainConfig{
			TopK:           3,
			Workers:        explain.DefaultWorkers,
			FeaturePolicy:  explain.DefaultFeaturePolicy.String(),
			PartialTopK:    explain.DefaultPartialTopK,
			PredictedClass: explain.DefaultPredictedClassPattern,
			SimplexEpsilon: explain.DefaultSimplexEpsilon,
		},
		Output: OutputConfig{Format: formatTable, PatternTerms: 10},
		Log:    LogConfig{Level: logrus.InfoLevel.String()},
	}
}

// loadConfig reads path over the defaults. Unknown keys are an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s: unknown keys %s", errConfig, path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// validate checks the merged configuration before any work starts.
func (c Config) validate() error {
	switch {
	case c.Model == "":
		return fmt.Errorf("%w: model bundle path is required", errConfig)
	case c.Data.Root == "":
		return fmt.Errorf("%w: data root is required", errConfig)
	case c.Data.Split != corpus.SplitTrain && c.Data.Split != corpus.SplitTest:
		return fmt.Errorf("%w: split %q", errConfig, c.Data.Split)
	case c.Data.Limit < 0:
		return fmt.Errorf("%w: limit %d", errConfig, c.Data.Limit)
	case c.Explain.TopK < 0:
		return fmt.Errorf("%w: top_k %d", errConfig, c.Explain.TopK)
	case c.Explain.Workers < 0:
		return fmt.Errorf("%w: workers %d", errConfig, c.Explain.Workers)
	case c.Explain.SimplexEpsilon < 0 || math.IsNaN(c.Explain.SimplexEpsilon) || math.IsInf(c.Explain.SimplexEpsilon, 0):
		return fmt.Errorf("%w: simplex_epsilon %g", errConfig, c.Explain.SimplexEpsilon)
	case c.Output.PatternTerms < 0:
		return fmt.Errorf("%w: pattern_terms %d", errConfig, c.Output.PatternTerms)
	}
	if _, err := c.featurePolicy(); err != nil {
		return err
	}
	switch c.Output.Format {
	case formatTable, formatJSON, formatProto:
	default:
		return fmt.Errorf("%w: output format %q", errConfig, c.Output.Format)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}

	return nil
}

func (c Config) featurePolicy() (explain.FeaturePolicy, error) {
	switch c.Explain.FeaturePolicy {
	case explain.KeepDegenerate.String():
		return explain.KeepDegenerate, nil
	case explain.FailDegenerate.String():
		return explain.FailDegenerate, nil
	}

	return 0, fmt.Errorf("%w: feature policy %q", errConfig, c.Explain.FeaturePolicy)
}

// explainOptions maps the [explain] table to explain options.
func (c Config) explainOptions() []explain.Option {
	policy, _ := c.featurePolicy()
	opts := []explain.Option{
		explain.WithFeaturePolicy(policy),
		explain.WithWorkers(c.Explain.Workers),
		explain.WithSimplexEpsilon(c.Explain.SimplexEpsilon),
	}
	if c.Explain.PartialTopK {
		opts = append(opts, explain.WithPartialTopK())
	}
	if c.Explain.PredictedClass {
		opts = append(opts, explain.WithPredictedClassPattern())
	}

	return opts
}
