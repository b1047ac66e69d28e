// Package config loads runtime configuration for the budgetkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. BUDGET_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "database_path": "finance management.db",
//	  "log_level": "info",
//	  "hash_time": 3,
//	  "hash_memory_kib": 65536,
//	  "hash_threads": 4,
//	  "recovery_ticket_ttl": "10m"
//	}
package config
