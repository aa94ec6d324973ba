// Package config loads CLI configuration from an optional YAML file with
// environment variable overrides.
//
// Precedence (highest to lowest): TURKISHCARDS_* environment variables, the
// YAML file, hardcoded defaults. Example mappings:
//
//	TURKISHCARDS_DATA_FILE          -> data_file
//	TURKISHCARDS_TUNING_POOL_SIZE   -> tuning.pool_size
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/avodyanin-ux/turkish-cards/pkg/study"
)

const envPrefix = "TURKISHCARDS_"

// Config is the full CLI configuration.
type Config struct {
	DataFile  string `koanf:"data_file"`  // words JSON file
	SeedFile  string `koanf:"seed_file"`  // bundled read-only seed, optional
	HistoryDB string `koanf:"history_db"` // review log; empty disables logging
	Tuning    Tuning `koanf:"tuning"`
}

// Tuning mirrors study.Config for file-based configuration. Cooldown stage
// keys must be quoted in YAML ("1": 2) so they decode as strings.
type Tuning struct {
	PoolSize            int            `koanf:"pool_size"`
	MinVerbShare        float64        `koanf:"min_verb_share"`
	StreakToGraduate    int            `koanf:"streak_to_graduate"`
	CooldownDays        map[string]int `koanf:"cooldown_days"`
	DefaultCooldownDays int            `koanf:"default_cooldown_days"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		DataFile:  "words.json",
		HistoryDB: "reviews.db",
	}
}

// Load reads the YAML file at path (skipped when empty or missing) and
// applies environment overrides. A present but malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			content, err := os.ReadFile(path)
			if err != nil {
				return cfg, fmt.Errorf("read config file: %w", err)
			}
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// envTransform maps TURKISHCARDS_TUNING_POOL_SIZE to tuning.pool_size and
// TURKISHCARDS_DATA_FILE to data_file.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(s, "tuning_"); ok {
		return "tuning." + rest
	}
	return s
}

// StudyConfig converts the tuning section into an engine config. Zero-value
// fields stay zero and pick up the engine's defaults.
func (t Tuning) StudyConfig() (study.Config, error) {
	cfg := study.Config{
		PoolSize:            t.PoolSize,
		MinVerbShare:        t.MinVerbShare,
		StreakToGraduate:    t.StreakToGraduate,
		DefaultCooldownDays: t.DefaultCooldownDays,
	}
	if t.CooldownDays != nil {
		cfg.CooldownDays = make(map[int]int, len(t.CooldownDays))
		for k, v := range t.CooldownDays {
			stage, err := strconv.Atoi(k)
			if err != nil {
				return study.Config{}, fmt.Errorf("cooldown_days: invalid stage %q", k)
			}
			cfg.CooldownDays[stage] = v
		}
	}
	return cfg, nil
}
