package config

import (
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the CLI.
//
// The Hash* fields are the Argon2id cost parameters used for new hashes;
// existing hashes always verify with the parameters encoded in them.
type Config struct {
	DatabasePath      string        `env:"BUDGET_DB_PATH, overwrite"`
	LogLevel          string        `env:"BUDGET_LOG_LEVEL, overwrite"`
	HashTime          uint32        `env:"BUDGET_HASH_TIME, overwrite"`
	HashMemoryKiB     uint32        `env:"BUDGET_HASH_MEMORY_KIB, overwrite"`
	HashThreads       uint8         `env:"BUDGET_HASH_THREADS, overwrite"`
	RecoveryTicketTTL time.Duration `env:"BUDGET_RECOVERY_TICKET_TTL, overwrite"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = common.DefaultDatabasePath
	c.LogLevel = "info"
	c.HashTime = 3
	c.HashMemoryKiB = 64 * 1024
	c.HashThreads = 4
	c.RecoveryTicketTTL = 10 * time.Minute
}

// LoadConfig builds a Config from defaults, the JSON file, the process
// environment and os.Args, in that order.
func LoadConfig(ctx context.Context) (*Config, error) {
	return load(ctx, os.Args[1:], envconfig.OsLookuper())
}

func load(ctx context.Context, args []string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, lookuper); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
