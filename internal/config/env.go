package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// parseEnv overlays cfg with BUDGET_* variables. Unset variables keep the
// values from earlier layers.
func parseEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}
