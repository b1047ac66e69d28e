package common

// DefaultDatabasePath is the SQLite file used when no other path is configured.
const DefaultDatabasePath = "finance management.db"

// AppName is used as a log attribute and in the REPL banner.
const AppName = "budgetkeeper"
