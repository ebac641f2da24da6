package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ezBadminton/badmintondraw/badminton"
	"github.com/ezBadminton/badmintondraw/core"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownStore = errors.New("unknown store driver")
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Sync     SyncConfig     `yaml:"sync"`
	Defaults DefaultsConfig `yaml:"defaults"`
	LogLevel string         `yaml:"log_level"`
}

type StoreConfig struct {
	Driver        string `yaml:"driver"`
	SQLitePath    string `yaml:"sqlite_path"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

// SyncConfig holds the settings of the spreadsheet web app sync
type SyncConfig struct {
	SheetURL string `yaml:"sheet_url"`
	// Minimum time between two posts
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DefaultsConfig holds the settings that new tournaments and
// categories start with
type DefaultsConfig struct {
	Courts          string          `yaml:"courts"`
	StartTime       string          `yaml:"start_time"`
	MatchDuration   int             `yaml:"match_duration"`
	ClubProtection  bool            `yaml:"club_protection"`
	ThirdPlaceMatch bool            `yaml:"third_place_match"`
	TeamsPerGroup   int             `yaml:"teams_per_group"`
	AdvancePerGroup int             `yaml:"advance_per_group"`
	ScoreRules      badminton.Rules `yaml:"score_rules"`
}

func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:        StoreSQLite,
			SQLitePath:    "badminton.db",
			MongoDatabase: "badminton",
		},
		Sync: SyncConfig{
			Interval: 2500 * time.Millisecond,
			Timeout:  15 * time.Second,
		},
		Defaults: DefaultsConfig{
			Courts:          "4",
			StartTime:       "08:00",
			MatchDuration:   30,
			ClubProtection:  true,
			ThirdPlaceMatch: true,
			TeamsPerGroup:   4,
			AdvancePerGroup: 2,
			ScoreRules:      badminton.DefaultRules(),
		},
		LogLevel: "info",
	}
}

// LoadConfig loads the configuration from a YAML file on top of
// the defaults. A missing file leaves the defaults in place.
// Variables from a .env file and the environment override both.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	// A missing .env file is fine
	_ = godotenv.Load()

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BADMINTON_STORE"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("BADMINTON_SQLITE_PATH"); v != "" {
		c.Store.SQLitePath = v
	}
	if v := os.Getenv("BADMINTON_MONGO_URI"); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv("BADMINTON_MONGO_DB"); v != "" {
		c.Store.MongoDatabase = v
	}
	if v := os.Getenv("BADMINTON_SHEET_URL"); v != "" {
		c.Sync.SheetURL = v
	}
	if v := os.Getenv("BADMINTON_SYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Sync.Interval = d
		}
	}
	if v := os.Getenv("BADMINTON_COURTS"); v != "" {
		c.Defaults.Courts = v
	}
	if v := os.Getenv("BADMINTON_MATCH_DURATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Defaults.MatchDuration = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Checks the store settings and normalizes the score rules
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("the mongo store needs BADMINTON_MONGO_URI")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store.Driver)
	}

	rules, err := badminton.NewRules(
		c.Defaults.ScoreRules.WinningPoints,
		c.Defaults.ScoreRules.MaxPoints,
		c.Defaults.ScoreRules.TwoPointMargin,
	)
	if err != nil {
		return fmt.Errorf("invalid score rules: %w", err)
	}
	c.Defaults.ScoreRules = rules

	return nil
}

// Applies the defaults to a new tournament
func (d DefaultsConfig) ApplyTournament(t *core.Tournament) {
	t.Courts = d.Courts
	t.StartTime = d.StartTime
	t.MatchDuration = d.MatchDuration
	t.ClubProtection = d.ClubProtection
}

// Applies the defaults to a new category
func (d DefaultsConfig) ApplyCategory(c *core.Category) {
	c.ThirdPlaceMatch = d.ThirdPlaceMatch
	c.TeamsPerGroup = d.TeamsPerGroup
	c.AdvancePerGroup = d.AdvancePerGroup
	rules := d.ScoreRules
	c.ScoreRules = &rules
}
