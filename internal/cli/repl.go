package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printFn and printlnFn are test seams for REPL output.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Reset(ctx context.Context) error
	Logout(ctx context.Context) error

	Home(ctx context.Context) error
	Goals(ctx context.Context, args []string) error
	AddGoal(ctx context.Context) error
	DeleteGoal(ctx context.Context) error
	CashFlow(ctx context.Context, args []string) error
	AddTransaction(ctx context.Context) error
	DeleteTransaction(ctx context.Context) error
	Stats(ctx context.Context) error
	Budgets(ctx context.Context) error
	AddBudget(ctx context.Context) error
	DeleteBudget(ctx context.Context) error
	Investments(ctx context.Context) error
	AddInvestment(ctx context.Context) error
	DeleteInvestment(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, reset, exit"
	helpSignedIn  = "Available commands: home, goals [date|amount|name], addgoal, delgoal,\n" +
		"  cashflow [income-sort] [expense-sort], addtx, deltx, stats,\n" +
		"  budgets, addbudget, delbudget, investments, addinvestment, delinvestment, logout, exit"
)

var signedOutCommands = map[string]bool{"register": true, "login": true, "reset": true}

var signedInCommands = map[string]bool{
	"home": true, "goals": true, "addgoal": true, "delgoal": true,
	"cashflow": true, "addtx": true, "deltx": true, "stats": true,
	"budgets": true, "addbudget": true, "delbudget": true,
	"investments": true, "addinvestment": true, "delinvestment": true,
	"logout": true,
}

// runREPL reads one command per line from reader and dispatches it to a.
// Command errors are printed and the loop continues; it returns on "exit",
// "quit" or end of input.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("budget%s> ", statusFn()))

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				printlnFn()
				return
			}
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch {
		case signedInCommands[cmd] && !a.isLoggedIn():
			printlnFn("Please login first.")
			continue
		case signedOutCommands[cmd] && a.isLoggedIn():
			printlnFn("Please logout first.")
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "reset":
			err = a.Reset(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "home":
			err = a.Home(ctx)
		case "goals":
			err = a.Goals(ctx, args)
		case "addgoal":
			err = a.AddGoal(ctx)
		case "delgoal":
			err = a.DeleteGoal(ctx)
		case "cashflow":
			err = a.CashFlow(ctx, args)
		case "addtx":
			err = a.AddTransaction(ctx)
		case "deltx":
			err = a.DeleteTransaction(ctx)
		case "stats":
			err = a.Stats(ctx)
		case "budgets":
			err = a.Budgets(ctx)
		case "addbudget":
			err = a.AddBudget(ctx)
		case "delbudget":
			err = a.DeleteBudget(ctx)
		case "investments":
			err = a.Investments(ctx)
		case "addinvestment":
			err = a.AddInvestment(ctx)
		case "delinvestment":
			err = a.DeleteInvestment(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describe(err))
		}
		if readErr != nil {
			return
		}
	}
}
