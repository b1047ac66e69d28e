package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/services"
)

// App holds the services and the signed-in session, if any.
type App struct {
	authService   services.AuthService
	ledgerService services.LedgerService
	log           logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	session *services.Session
}

// NewApp builds an App reading commands and answers from in and writing
// pages to out.
func NewApp(as services.AuthService, ls services.LedgerService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService:   as,
		ledgerService: ls,
		log:           log,
		reader:        bufio.NewReader(in),
		out:           out,
		now:           time.Now,
	}
}

// Run blocks in the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to %s (type 'help' for commands)\n", common.AppName)
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.session.Username)
}
