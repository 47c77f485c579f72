package config

import "testing"

func TestParseAppliesFlagOverrides(t *testing.T) {
	cfg := Parse([]string{
		"-env", "nonexistent.env",
		"-verbnet-data", "/data/verbnet",
		"-max-threads", "8",
		"-early-exit-threshold", "0.9",
	})

	if cfg.VerbnetDataPath != "/data/verbnet" {
		t.Fatalf("expected verbnet data path override, got %q", cfg.VerbnetDataPath)
	}
	if cfg.MaxThreads != 8 {
		t.Fatalf("expected max threads override, got %d", cfg.MaxThreads)
	}
	if cfg.EarlyExitThreshold != 0.9 {
		t.Fatalf("expected early exit threshold override, got %v", cfg.EarlyExitThreshold)
	}
	// a missing .env file is tolerated, not fatal
	if cfg.CacheDir != "./cache" {
		t.Fatalf("expected default cache dir to survive, got %q", cfg.CacheDir)
	}
}

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	cfg := Default()
	if cfg.MinFrequency != 2 || !cfg.EnableSynthesis || cfg.EarlyExitThreshold != 0.7 || cfg.MaxThreads != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestEngineBaseHonorsOverrides(t *testing.T) {
	cfg := Default()
	cfg.MaxThreads = 16
	cfg.ConfidenceThreshold = 0.33

	base := cfg.EngineBase()
	if base.MaxThreads != 16 || base.ConfidenceThreshold != 0.33 {
		t.Fatalf("expected EngineBase to carry overrides, got %+v", base)
	}
}
