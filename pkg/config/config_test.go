package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataFile != "words.json" || cfg.HistoryDB != "reviews.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Tuning.PoolSize != 0 {
		t.Fatalf("tuning must stay zero so the engine applies its defaults, got %+v", cfg.Tuning)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "yok.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataFile != "words.json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
data_file: /srv/cards/words.json
history_db: ""
tuning:
  pool_size: 10
  min_verb_share: 0.5
  streak_to_graduate: 2
  default_cooldown_days: 3
  cooldown_days:
    "1": 2
    "2": 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataFile != "/srv/cards/words.json" {
		t.Fatalf("data file = %q", cfg.DataFile)
	}
	if cfg.HistoryDB != "" {
		t.Fatalf("history db = %q, want empty (disabled)", cfg.HistoryDB)
	}
	if cfg.Tuning.PoolSize != 10 || cfg.Tuning.MinVerbShare != 0.5 || cfg.Tuning.StreakToGraduate != 2 {
		t.Fatalf("tuning = %+v", cfg.Tuning)
	}
	if cfg.Tuning.CooldownDays["2"] != 5 {
		t.Fatalf("cooldown days = %v", cfg.Tuning.CooldownDays)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "data_file: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "data_file: from-file.json\ntuning:\n  pool_size: 10\n")
	t.Setenv("TURKISHCARDS_DATA_FILE", "from-env.json")
	t.Setenv("TURKISHCARDS_TUNING_POOL_SIZE", "25")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataFile != "from-env.json" {
		t.Fatalf("data file = %q, want env override", cfg.DataFile)
	}
	if cfg.Tuning.PoolSize != 25 {
		t.Fatalf("pool size = %d, want env override 25", cfg.Tuning.PoolSize)
	}
}

func TestStudyConfig(t *testing.T) {
	tuning := Tuning{
		PoolSize:     12,
		CooldownDays: map[string]int{"1": 2, "5": 20},
	}
	cfg, err := tuning.StudyConfig()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if cfg.PoolSize != 12 {
		t.Fatalf("pool size = %d", cfg.PoolSize)
	}
	if cfg.CooldownDays[5] != 20 {
		t.Fatalf("cooldown days = %v", cfg.CooldownDays)
	}

	if _, err := (Tuning{CooldownDays: map[string]int{"beş": 1}}).StudyConfig(); err == nil {
		t.Fatal("expected error for non-numeric stage key")
	}
}
