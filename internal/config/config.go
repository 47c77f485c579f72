// Package config wires command-line flags and a .env file into the runtime
// configuration semcored needs to build the four engines, the coordinator
// and the facade, mirroring the teacher's own flag.String("env", ...) +
// godotenv.Load(*envFile) pattern in main.go.
package config

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/lexicoord/semcore/internal/engine"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Config is the fully resolved runtime configuration for one semcored process.
type Config struct {
	EnvFile string

	VerbnetDataPath  string
	FramenetDataPath string
	WordnetDataPath  string
	TreebankDataPath string

	CacheDir string

	MinFrequency        int
	EnableSynthesis     bool
	EarlyExitThreshold  float64
	MaxThreads          int
	Warmup              bool
	Dev                 bool
	ConfidenceThreshold float64

	// Args holds any non-flag positional arguments left after parsing.
	Args []string
}

// Default returns the conservative defaults every flag falls back to.
func Default() Config {
	return Config{
		EnvFile:             ".env",
		CacheDir:            "./cache",
		MinFrequency:        2,
		EnableSynthesis:     true,
		EarlyExitThreshold:  0.7,
		MaxThreads:          4,
		ConfidenceThreshold: 0.5,
	}
}

// Parse registers and parses the command-line flags, loads EnvFile (a
// missing .env is tolerated and merely logged, exactly as the teacher's
// main.go treats it) into the process environment. No Config field is read
// from environment variables; every value comes from its flag or default.
func Parse(args []string) Config {
	cfg := Default()

	fs := flag.NewFlagSet("semcored", flag.ExitOnError)
	fs.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "Path to environment file")
	fs.StringVar(&cfg.VerbnetDataPath, "verbnet-data", "", "Path to the verb-class XML database directory")
	fs.StringVar(&cfg.FramenetDataPath, "framenet-data", "", "Path to the frame/lexical-unit XML database directory")
	fs.StringVar(&cfg.WordnetDataPath, "wordnet-data", "", "Path to the synonym-graph data/index/exception files")
	fs.StringVar(&cfg.TreebankDataPath, "treebank-data", "", "Path to the CoNLL-U corpus directory")
	fs.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "Directory for binary snapshot caches")
	fs.IntVar(&cfg.MinFrequency, "min-frequency", cfg.MinFrequency, "Minimum corpus frequency for a treebank pattern to be indexed")
	fs.BoolVar(&cfg.EnableSynthesis, "enable-synthesis", cfg.EnableSynthesis, "Allow the treebank engine to synthesize a pattern when the corpus has none")
	fs.Float64Var(&cfg.EarlyExitThreshold, "early-exit-threshold", cfg.EarlyExitThreshold, "Synonym-graph early-exit confidence; stored on Config but not passed to the wordnet engine, whose POS scan stops at a fixed 0.7")
	fs.IntVar(&cfg.MaxThreads, "max-threads", cfg.MaxThreads, "Bound on concurrent per-word engine fan-out and batch workers")
	fs.BoolVar(&cfg.Warmup, "warmup", cfg.Warmup, "Run a warm-up pass over common words before serving")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "Use human-readable text logging instead of JSON")
	fs.Float64Var(&cfg.ConfidenceThreshold, "confidence-threshold", cfg.ConfidenceThreshold, "Minimum confidence for a frame to surface in the aggregate output")
	if err := fs.Parse(args); err != nil {
		log.WithError(err).Fatal("failed to parse flags")
	}

	if err := godotenv.Load(cfg.EnvFile); err != nil {
		log.Warnf("Warning: Error loading env file %s: %v", cfg.EnvFile, err)
	}

	cfg.Args = fs.Args()
	return cfg
}

// EngineBase builds the shared engine.Config every engine is constructed
// with, honoring MaxThreads and ConfidenceThreshold from cfg.
func (c Config) EngineBase() engine.Config {
	base := engine.DefaultConfig()
	base.MaxThreads = c.MaxThreads
	base.ConfidenceThreshold = c.ConfidenceThreshold
	return base
}
