// Package cli is the interactive terminal front end of budgetkeeper.
//
// Signed out, the REPL offers register, login and reset (password recovery
// through the security question). Signed in, it shows the home page and
// lists, adds and deletes goals, transactions, budgets and investments,
// plus the cash-flow tables and a text chart of the running balance.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
