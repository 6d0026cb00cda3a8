package main

import (
	"context"
	"time"

	"github.com/and161185/budget-keeper/internal/model"
	"github.com/and161185/budget-keeper/internal/session"
	"github.com/and161185/budget-keeper/internal/store"
)

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "login")
	email := fs.String("e", "", "email")
	pass := fs.String("p", "", "password")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" || *pass == "" {
		return need("-e", "-p")
	}
	u, err := a.accounts.Login(ctx, *email, *pass)
	if err != nil {
		return err
	}
	return a.printJSON(map[string]any{"status": "ok", "user": u})
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.accounts.Logout(ctx); err != nil {
		return err
	}
	return a.printJSON(map[string]string{"status": msg(a.lang, msgLoggedOut)})
}

type whoami struct {
	State     string      `json:"state"`
	Bypass    bool        `json:"bypass"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
	User      *model.User `json:"user,omitempty"`
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	out := whoami{State: a.sess.State().String(), Bypass: a.sess.BypassActive()}
	if exp, ok := session.TokenExpiry(a.sess.Token()); ok {
		out.ExpiresAt = &exp
	}
	if u, ok := a.sess.CurrentUser(); ok {
		out.User = u
	}
	return a.printJSON(out)
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "register")
	name := fs.String("name", "", "display name")
	email := fs.String("e", "", "email")
	pass := fs.String("p", "", "password")
	confirm := fs.String("confirm", "", "password confirmation (defaults to -p)")
	set, err := parse(fs, args)
	if err != nil {
		return err
	}
	if *name == "" || *email == "" || *pass == "" {
		return need("-name", "-e", "-p")
	}
	if !set["confirm"] {
		*confirm = *pass
	}
	u, err := a.accounts.Register(ctx, *name, *email, *pass, *confirm)
	if err != nil {
		return err
	}
	return a.printJSON(u)
}

func cmdForgotPassword(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "forgot-password")
	email := fs.String("e", "", "email")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" {
		return need("-e")
	}
	res, err := a.accounts.ForgotPassword(ctx, *email)
	if err != nil {
		return err
	}
	if res.Message == "" {
		res.Message = msg(a.lang, msgResetSent)
	}
	return a.printJSON(res)
}

func cmdResetPassword(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "reset-password")
	token := fs.String("token", "", "reset token")
	pass := fs.String("p", "", "new password")
	confirm := fs.String("confirm", "", "password confirmation (defaults to -p)")
	set, err := parse(fs, args)
	if err != nil {
		return err
	}
	if *token == "" || *pass == "" {
		return need("-token", "-p")
	}
	if !set["confirm"] {
		*confirm = *pass
	}
	m, err := a.accounts.ResetPassword(ctx, *token, *pass, *confirm)
	if err != nil {
		return err
	}
	return a.printJSON(model.MessageResponse{Message: m})
}

func cmdLang(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return a.printJSON(map[string]string{"language": a.lang})
	}
	if err := store.SetLanguage(ctx, a.store, args[0]); err != nil {
		return err
	}
	a.lang = args[0]
	return a.printJSON(map[string]string{"language": a.lang})
}
