package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/flagx"
	"github.com/dmitrijs2005/budgetkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// mean "not set" and leave the corresponding Config field alone.
type JsonConfig struct {
	DatabasePath      string         `json:"database_path"`
	LogLevel          string         `json:"log_level"`
	HashTime          uint32         `json:"hash_time"`
	HashMemoryKiB     uint32         `json:"hash_memory_kib"`
	HashThreads       uint8          `json:"hash_threads"`
	RecoveryTicketTTL timex.Duration `json:"recovery_ticket_ttl"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.HashTime != 0 {
		cfg.HashTime = jc.HashTime
	}
	if jc.HashMemoryKiB != 0 {
		cfg.HashMemoryKiB = jc.HashMemoryKiB
	}
	if jc.HashThreads != 0 {
		cfg.HashThreads = jc.HashThreads
	}
	if jc.RecoveryTicketTTL.Duration != 0 {
		cfg.RecoveryTicketTTL = jc.RecoveryTicketTTL.Duration
	}
	return nil
}
