package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dom/whatnot-go/internal/config"
	"github.com/dom/whatnot-go/internal/logging"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs one command and returns the process exit code.
func execute(argv []string) int {
	if len(argv) < 1 {
		printUsage()
		return 1
	}

	command := argv[0]
	args := argv[1:]

	switch command {
	case "help", "-h", "--help":
		printUsage()
		return 0
	}

	cfg, err := config.Load(os.Getenv("WHATNOT_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 1
	}

	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	logger := logging.New(cfg.Env, level, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 1
	}

	err = run(ctx, app, command, args)
	if cerr := app.Close(); cerr != nil {
		logger.Warn("close failed", "error", cerr)
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
		} else {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		}
		return 1
	}
	return 0
}

func run(ctx context.Context, app *app, command string, args []string) error {
	switch command {
	case "login":
		return app.loginCmd(ctx, args)
	case "logout":
		return app.logoutCmd(ctx)
	case "account":
		return app.accountCmd(ctx)
	case "payment":
		return app.paymentCmd(ctx)
	case "user":
		return app.userCmd(ctx, args)
	case "user-id":
		return app.userIDCmd(ctx, args)
	case "lives":
		return app.livesCmd(ctx, args)
	case "live":
		return app.liveCmd(ctx, args)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		return errUsage
	}
}

func printUsage() {
	fmt.Println(`whatnot - command line client for the Whatnot live shopping platform

USAGE:
  whatnot <command> [options]

COMMANDS:
  login     Log in (asks for a verification code when needed) and save the session
  logout    Forget the saved session
  account   Show the logged in account
  payment   Show the default payment method
  user      Look up a user by username
  user-id   Look up a user by id
  lives     List a user's live streams
  live      Show one live stream
  help      Show this help message

ENVIRONMENT:
  WHATNOT_CONFIG          Optional YAML config file
  WHATNOT_SESSION_DRIVER  file (default), sqlite, postgres, redis or memory
  WHATNOT_SESSION_PATH    Session file (default: session.json)
  WHATNOT_LOG_LEVEL       debug, info, warn or error (default: warn)

EXAMPLES:
  whatnot login
  whatnot user jlsgaming
  whatnot lives --first=3 1234567
  whatnot live 98765432`)
}
