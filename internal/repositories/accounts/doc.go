// Package accounts is the credential store: registered users with their
// password hash, chosen security question and answer hash.
//
// The Repository interface is what services depend on; SQLiteRepository
// implements it over a dbx.DBTX so it can run on either *sql.DB or inside
// a transaction.
//
// Usernames are unique and compared exactly (case-sensitive). A duplicate
// insert reports common.ErrDuplicateUsername and lookups of missing rows
// report common.ErrorNotFound; every other failure is a wrapped driver error.
package accounts
