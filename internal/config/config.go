// Package config loads command configuration from the environment, then
// from flags.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds automation command configuration.
type Config struct {
	Serve         bool          `env:"AUTOMATION_SERVE"`
	Port          int           `env:"AUTOMATION_PORT" envDefault:"8080"`
	Seats         string        `env:"AUTOMATION_SEATS" envDefault:"Alice:bigmoney,Bob:random"`
	Seed          uint64        `env:"AUTOMATION_SEED"` // 0 picks a random seed
	Games         int           `env:"AUTOMATION_GAMES" envDefault:"1"`
	MaxTurns      int           `env:"AUTOMATION_MAX_TURNS"`
	TranscriptDir string        `env:"AUTOMATION_TRANSCRIPT_DIR" envDefault:"transcripts"`
	HistoryDB     string        `env:"AUTOMATION_HISTORY_DB" envDefault:"automation.db"`
	Retention     time.Duration `env:"AUTOMATION_RETENTION" envDefault:"10m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.BoolVar(&cfg.Serve, "serve", cfg.Serve, "Run the spectator server instead of a local game")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Spectator server port")
	fs.StringVar(&cfg.Seats, "seats", cfg.Seats, `Seats as "Name:strategy,..." (bigmoney, random, console)`)
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Shuffle seed, 0 for random")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "Number of games to play with consecutive seeds")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "Abort a game after this many turns, 0 for no limit")
	fs.StringVar(&cfg.TranscriptDir, "transcripts", cfg.TranscriptDir, "Transcript directory, empty to disable")
	fs.StringVar(&cfg.HistoryDB, "history", cfg.HistoryDB, "SQLite results ledger, empty to disable")
	fs.DurationVar(&cfg.Retention, "retention", cfg.Retention, "How long a finished server game stays watchable")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Seed == 0 {
		seed, err := NewSeed()
		if err != nil {
			return Config{}, err
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Port)
	}
	if c.Games < 1 {
		return fmt.Errorf("%w: games must be at least 1", ErrInvalid)
	}
	if c.Retention < 0 {
		return fmt.Errorf("%w: retention must not be negative", ErrInvalid)
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("%w: max-turns must not be negative", ErrInvalid)
	}
	return nil
}

// NewSeed generates a random non-zero seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if s := binary.LittleEndian.Uint64(b[:]); s != 0 {
			return s, nil
		}
	}
}
