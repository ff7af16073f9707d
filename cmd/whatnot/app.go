package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dom/whatnot-go/internal/config"
	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/prompt"
	"github.com/dom/whatnot-go/internal/session"
	"github.com/dom/whatnot-go/internal/whatnot"
)

var errUsage = errors.New("usage")

type app struct {
	client *whatnot.Client
	prompt *prompt.Prompter
	logger *slog.Logger
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	store, err := session.New(cfg.Session.StoreConfig(), session.Dependencies{})
	if err != nil {
		return nil, err
	}

	return &app{
		client: whatnot.NewFromConfig(cfg, store, logger),
		prompt: prompt.New(os.Stdin, os.Stdout),
		logger: logger,
	}, nil
}

func (a *app) Close() error {
	return a.client.Close()
}

// loadSession restores a saved session if there is one. Public lookups work
// without it.
func (a *app) loadSession(ctx context.Context) {
	if err := a.client.LoadSession(ctx); err != nil && !errors.Is(err, session.ErrNotFound) {
		a.logger.Warn("ignoring saved session", slog.Any("error", err))
	}
}

func (a *app) loginCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "Account email (asked for when empty)")
	fs.Parse(args)

	for {
		email := *username
		var password string
		var err error
		if email == "" {
			email, password, err = a.prompt.Credentials(ctx)
		} else {
			password, err = a.prompt.Ask(ctx, "Password", "", true)
		}
		if err != nil {
			return err
		}

		err = a.client.Login(ctx, whatnot.LoginInput{
			Username: email,
			Password: password,
			Prompt:   a.prompt.Code,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrAuthentication) || errors.Is(err, domain.ErrVerificationNotImplemented) {
			return err
		}
		fmt.Println(errorStyle.Render("Login failed: " + err.Error()))
		fmt.Println()
	}

	if err := a.client.SaveSession(ctx); err != nil {
		return err
	}

	name := a.client.UserID()
	user, err := a.client.GetUserByID(ctx, name)
	if err != nil {
		a.logger.Warn("could not look up logged in user", slog.Any("error", err))
	} else if user != nil {
		name = user.Username
	}

	fmt.Println(titleStyle.Render("Hello, " + name + "!"))
	return nil
}

func (a *app) logoutCmd(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) accountCmd(ctx context.Context) error {
	if err := a.client.LoadSession(ctx); err != nil {
		return fmt.Errorf("not logged in, run `whatnot login` first: %w", err)
	}

	info, err := a.client.GetAccountInfo(ctx)
	if err != nil {
		return err
	}
	if info == nil {
		return errors.New("account not found")
	}

	fmt.Println(renderAccount(info))
	return nil
}

func (a *app) paymentCmd(ctx context.Context) error {
	if err := a.client.LoadSession(ctx); err != nil {
		return fmt.Errorf("not logged in, run `whatnot login` first: %w", err)
	}

	payment, err := a.client.GetDefaultPayment(ctx)
	if err != nil {
		return err
	}
	if payment == nil {
		fmt.Println(mutedStyle.Render("No default payment method."))
		return nil
	}

	fmt.Println(renderPayment(payment))
	return nil
}

func (a *app) userCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.loadSession(ctx)

	user, err := a.client.GetUser(ctx, args[0])
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found", args[0])
	}

	fmt.Println(renderUser(user))
	return nil
}

func (a *app) userIDCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.loadSession(ctx)

	user, err := a.client.GetUserByID(ctx, args[0])
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", args[0])
	}

	fmt.Println(renderUser(user))
	return nil
}

func (a *app) livesCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lives", flag.ExitOnError)
	first := fs.Int("first", whatnot.DefaultLivesPage, "Maximum number of live streams to list")

	// Accept the user id before or after the flags.
	var userID string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		userID, args = args[0], args[1:]
	}
	fs.Parse(args)
	if userID == "" {
		userID = fs.Arg(0)
	}
	if userID == "" {
		return errUsage
	}
	a.loadSession(ctx)

	lives, err := a.client.GetUserLives(ctx, userID, *first)
	if err != nil {
		return err
	}

	fmt.Println(renderLives(lives))
	return nil
}

func (a *app) liveCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.loadSession(ctx)

	live, err := a.client.GetLive(ctx, args[0])
	if err != nil {
		return err
	}
	if live == nil {
		return fmt.Errorf("live stream %s not found", args[0])
	}

	fmt.Println(renderLive(live))
	return nil
}
