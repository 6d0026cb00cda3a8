// Command bk is a CLI client for the household budget backend.
//
// Usage:
//
//	bk [global flags] <command> [flags]
//
// Run "bk help" for the command list.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/and161185/budget-keeper/internal/config"
	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/logging"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
	// restore re-validates a stored session before run.
	restore bool
}

var commands []command

func init() {
	commands = []command{
		{"login", "sign in and store the access token", cmdLogin, false},
		{"logout", "forget the stored token", cmdLogout, false},
		{"whoami", "show the session state and current user", cmdWhoami, true},
		{"register", "create an account", cmdRegister, false},
		{"forgot-password", "request a password reset", cmdForgotPassword, false},
		{"reset-password", "set a new password with a reset token", cmdResetPassword, false},
		{"lang", "show or set the preferred language (en, nl)", cmdLang, false},
		{"tx", "transactions: list | show | add | edit | rm", cmdTx, true},
		{"summary", "income, expenses and balance over a period", cmdSummary, true},
		{"categories", "categories: list | add | edit | rm", cmdCategories, true},
		{"beneficiaries", "beneficiaries: list | add | edit | rm", cmdBeneficiaries, true},
		{"users", "household users: list | add | edit | rm", cmdUsers, true},
		{"gifts", "gift occasions: list | show | add | edit | rm", cmdGifts, true},
		{"gift-entry", "money received or given: add | edit | rm", cmdGiftEntry, true},
		{"gift-purchase", "gift purchases: add | edit | rm", cmdGiftPurchase, true},
		{"image", "receipt images: upload | fetch", cmdImage, true},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	config.LoadDotenv()
	cfg := config.Load()

	global := flag.NewFlagSet("bk", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.StringVar(&cfg.APIURL, "api", cfg.APIURL, "backend base URL")
	global.StringVar(&cfg.Store, "store", cfg.Store, "state store: file, redis or postgres")
	global.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	global.StringVar(&cfg.BypassHeader, "bypass-header", cfg.BypassHeader, "development auth bypass header")
	global.BoolVar(&cfg.Production, "prod", cfg.Production, "production mode (disables bypass)")
	global.Usage = func() { usage(stderr) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if global.NArg() < 1 {
		usage(stderr)
		return 2
	}

	name, rest := global.Arg(0), global.Args()[1:]
	switch name {
	case "version":
		fmt.Fprintf(stdout, "bk %s (%s)\n", version, buildDate)
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	}
	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		usage(stderr)
		return 2
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 2
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout+cfg.ProbeTimeout)
	defer cancel()

	a, err := newApp(ctx, cfg, log, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer a.close()

	if cmd.restore {
		if err := a.sess.Bootstrap(ctx); err != nil {
			return a.report(err)
		}
	}
	if err := cmd.run(ctx, a, rest); err != nil {
		return a.report(err)
	}
	return 0
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// report prints err and maps it to an exit code.
func (a *app) report(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintln(a.errOut, "usage:", ue.msg)
		return 2
	case errors.Is(err, flag.ErrHelp):
		return 2
	case errors.Is(err, errLoginRequired):
		// the navigator has already printed the hint
		return 1
	case errors.Is(err, errs.ErrValidation):
		fmt.Fprintln(a.errOut, "invalid:", err)
		return 2
	default:
		a.log.Debug("command failed", zap.Error(err))
		fmt.Fprintln(a.errOut, "error:", err)
		return 1
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: bk [-api URL] [-store file|redis|postgres] [-log-level L] [-bypass-header H] [-prod] <command> [flags]")
	fmt.Fprintln(w, "\ncommands:")
	fmt.Fprintf(w, "  %-16s %s\n", "version", "print version")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-16s %s\n", c.name, c.summary)
	}
}
