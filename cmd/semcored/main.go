// Command semcored wires flag/.env configuration into the four lexical
// engines, the coordinator and the facade, the way the teacher's own
// main.go wires its MCP server out of flags, an env file, and a set of
// feature-gated tool registrations.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lexicoord/semcore/internal/config"
	"github.com/lexicoord/semcore/internal/coordinator"
	"github.com/lexicoord/semcore/internal/facade"
	"github.com/lexicoord/semcore/internal/framenet"
	"github.com/lexicoord/semcore/internal/treebank"
	"github.com/lexicoord/semcore/internal/verbnet"
	"github.com/lexicoord/semcore/internal/wordnet"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// defaultWarmupWords is a small, high-frequency closed-class-free sample
// used to preload caches when -warmup is set and the caller hasn't supplied
// its own list via some future batch-warmup entry point.
var defaultWarmupWords = []string{
	"be", "have", "do", "say", "go", "get", "make", "know", "think", "take",
	"see", "come", "want", "use", "find", "give", "tell", "work", "call", "try",
}

func main() {
	cfg := config.Parse(os.Args[1:])

	if cfg.Dev {
		log.SetFormatter(&logrus.TextFormatter{})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	var vn *verbnet.Engine
	if cfg.VerbnetDataPath != "" {
		var err error
		vn, err = verbnet.New(verbnet.Config{DataPath: cfg.VerbnetDataPath, Base: cfg.EngineBase()})
		if err != nil {
			log.WithError(err).Warn("verbnet engine disabled: build failed")
			vn = nil
		}
	}

	var fn *framenet.Engine
	if cfg.FramenetDataPath != "" {
		snapshotPath := ""
		if cfg.CacheDir != "" {
			snapshotPath = cfg.CacheDir + "/framenet.db"
		}
		var err error
		fn, err = framenet.New(framenet.Config{
			DataPath:      cfg.FramenetDataPath,
			SnapshotPath:  snapshotPath,
			IsDefaultPath: snapshotPath != "",
			Base:          cfg.EngineBase(),
		})
		if err != nil {
			log.WithError(err).Warn("framenet engine disabled: build failed")
			fn = nil
		}
	}

	var wn *wordnet.Engine
	if cfg.WordnetDataPath != "" {
		var err error
		wn, err = wordnet.New(wordnet.Config{DataPath: cfg.WordnetDataPath, Mode: wordnet.Lenient, Base: cfg.EngineBase()})
		if err != nil {
			log.WithError(err).Warn("wordnet engine disabled: build failed")
			wn = nil
		}
	}

	var tb *treebank.Engine
	if cfg.TreebankDataPath != "" {
		t3Path := ""
		if cfg.CacheDir != "" {
			t3Path = cfg.CacheDir + "/treebank_index.db"
		}
		var err error
		tb, err = treebank.New(treebank.Config{
			CorpusPath:       cfg.TreebankDataPath,
			T3Path:           t3Path,
			MinFrequency:     cfg.MinFrequency,
			DisableSynthesis: !cfg.EnableSynthesis,
			Theta:            treebank.VerbnetThetaGridSource{Verbnet: vn},
			Frame:            treebank.FramenetCoreElementSource{Framenet: fn},
			Base:             cfg.EngineBase(),
		})
		if err != nil {
			log.WithError(err).Warn("treebank engine disabled: build failed")
			tb = nil
		}
	}

	if vn == nil && fn == nil && wn == nil && tb == nil {
		log.Fatal("no engine could be built; at least one data path flag is required")
	}

	coord := coordinator.New(vn, fn, wn, tb, coordinator.Config{MaxParallelEngines: cfg.MaxThreads, MaxParallelBatch: cfg.MaxThreads})
	f := facade.New(nil, nil, coord, facade.Config{ConfidenceThreshold: cfg.ConfidenceThreshold})

	if cfg.Warmup {
		log.Info("warming up engine caches")
		if err := coord.WarmupCache(context.Background(), defaultWarmupWords); err != nil {
			log.WithError(err).Warn("warmup pass failed")
		}
	}

	text := ""
	if len(cfg.Args) > 0 {
		text = cfg.Args[0]
	}
	if text == "" {
		log.Info("semcored ready; pass text as a positional argument to analyze it")
		return
	}

	out, err := f.Analyze(context.Background(), text)
	if err != nil {
		log.WithError(err).Fatal("analysis failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
