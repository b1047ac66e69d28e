package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/flagx"
)

// parseFlags applies -d and -l. Other arguments are filtered out first so
// -c/-config never trips the parser.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("budgetcli", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-d", "-l"})); err != nil {
		return fmt.Errorf("config: flags: %w", err)
	}
	return nil
}
