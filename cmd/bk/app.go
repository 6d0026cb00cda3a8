package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/and161185/budget-keeper/internal/api"
	"github.com/and161185/budget-keeper/internal/config"
	"github.com/and161185/budget-keeper/internal/service"
	"github.com/and161185/budget-keeper/internal/session"
	"github.com/and161185/budget-keeper/internal/store"
	"github.com/and161185/budget-keeper/internal/store/postgres"
	bkredis "github.com/and161185/budget-keeper/internal/store/redis"
)

// app is the composition root of one CLI invocation.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	out    io.Writer
	errOut io.Writer
	lang   string

	store   store.Store
	sess    *session.Manager
	client  *api.Client
	reg     *prometheus.Registry
	closers []func()

	accounts service.AccountService
	txs      service.TransactionService
	gifts    service.GiftService
	catalog  service.CatalogService
}

// cliNavigator turns session redirects into hints on stderr.
type cliNavigator struct {
	w    io.Writer
	lang *string
}

func (n cliNavigator) Redirect(target string) {
	u, err := url.Parse(target)
	if err != nil || u.Path != session.LoginPath {
		fmt.Fprintf(n.w, "-> %s\n", target)
		return
	}
	if ret := u.Query().Get("returnUrl"); ret != "" {
		fmt.Fprintf(n.w, "%s (%s)\n", msg(*n.lang, msgLoginRequired), ret)
		return
	}
	fmt.Fprintln(n.w, msg(*n.lang, msgSessionEnded))
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger, out, errOut io.Writer) (*app, error) {
	a := &app{cfg: cfg, log: log, out: out, errOut: errOut, lang: store.DefaultLanguage, reg: prometheus.NewRegistry()}

	st, err := a.openStore(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	a.store = st
	if lang, err := store.Language(ctx, st); err == nil {
		a.lang = lang
	}

	a.sess, err = session.Open(ctx, st,
		session.WithLogger(log.Named("session")),
		session.WithNavigator(cliNavigator{w: errOut, lang: &a.lang}),
		session.WithBypassHeader(cfg.BypassHeader),
		session.WithProduction(cfg.Production),
		session.WithProbeTimeout(cfg.ProbeTimeout),
	)
	if err != nil {
		a.close()
		return nil, err
	}

	a.client, err = api.New(cfg.APIURL, a.sess,
		api.WithLogger(log.Named("api")),
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithMetrics(api.NewMetrics(a.reg)),
	)
	if err != nil {
		a.close()
		return nil, err
	}
	a.sess.SetProber(a.client)

	a.accounts = service.NewAccountService(a.client, a.sess)
	a.txs = service.NewTransactionService(a.client, a.sess)
	a.gifts = service.NewGiftService(a.client, a.sess)
	a.catalog = service.NewCatalogService(a.client)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	switch a.cfg.Store {
	case config.StoreRedis:
		rdb, err := bkredis.Dial(ctx, a.cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		return bkredis.New(rdb, a.cfg.Prefix), nil
	case config.StorePostgres:
		if err := postgres.Migrate(ctx, a.cfg.PostgresDSN, a.log); err != nil {
			return nil, err
		}
		db, err := postgres.New(ctx, a.cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return postgres.NewStateRepo(db, a.cfg.Profile), nil
	default:
		dir := a.cfg.StateDir
		if dir == "" {
			dir = store.DefaultDir()
		}
		return store.NewFile(dir, store.WithPassphrase(a.cfg.Passphrase)), nil
	}
}

// guard runs the navigation guard for a protected view.
func (a *app) guard(ctx context.Context, target string) error {
	if !a.sess.GuardNavigation(ctx, target) {
		return errLoginRequired
	}
	return nil
}

func (a *app) close() {
	if a.sess != nil {
		a.sess.Wait()
	}
	if a.cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.reg); err != nil {
			a.log.Warn("write metrics", zap.String("path", a.cfg.MetricsFile), zap.Error(err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

var errLoginRequired = errors.New("login required")

// usageError marks bad command-line usage (exit code 2).
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func need(flags ...string) error {
	return usagef("need %s", strings.Join(flags, " and "))
}
