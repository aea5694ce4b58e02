package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/naveenspark/gobarber/internal/auth"
	"github.com/naveenspark/gobarber/internal/config"
	"github.com/naveenspark/gobarber/internal/logging"
	"github.com/naveenspark/gobarber/internal/storage"
	"github.com/naveenspark/gobarber/internal/toast"
	"github.com/naveenspark/gobarber/internal/tui"
	"github.com/naveenspark/gobarber/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "--version", "version", "-v":
		fmt.Fprintln(out, "gobarber "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(out)
		return nil
	case "", "whoami", "logout":
	default:
		return fmt.Errorf("unknown command %q (try: gobarber help)", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	switch cmd {
	case "whoami":
		return runWhoami(out, svc.sessions)
	case "logout":
		return runLogout(out, svc.sessions)
	}
	return runTUI(svc)
}

// services holds everything built from the configuration.
type services struct {
	log      *zap.Logger
	client   *client.Client
	sessions *auth.Manager
	toasts   *toast.Manager
	closers  []func() error
}

func newServices(cfg *config.Config) (*services, error) {
	log, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Sync() //nolint:errcheck
		return nil, err
	}

	c := client.NewWithTimeout(cfg.APIURL, "", cfg.HTTPTimeout)
	sessions := auth.NewManager(c, store, log)
	sessions.Initialize()

	svc := &services{
		log:      log,
		client:   c,
		sessions: sessions,
		toasts:   toast.NewManager(cfg.ToastTTL, log),
	}
	if closeStore != nil {
		svc.closers = append(svc.closers, closeStore)
	}
	log.Info("started",
		zap.String("version", version),
		zap.String("api_url", cfg.APIURL),
		zap.String("store", cfg.Store),
		zap.Bool("signed_in", sessions.CurrentUser() != nil),
	)
	return svc, nil
}

func (s *services) Close() {
	s.toasts.Close()
	for _, fn := range s.closers {
		if err := fn(); err != nil {
			s.log.Warn("close", zap.Error(err))
		}
	}
	s.log.Sync() //nolint:errcheck // best-effort flush
}

// openStore builds the session store named by cfg.Store. The returned close
// func may be nil.
func openStore(cfg *config.Config) (storage.Store, func() error, error) {
	switch cfg.Store {
	case config.StoreFile:
		return storage.NewFile(cfg.DataDir), nil, nil
	case config.StoreMemory:
		return storage.NewMemory(), nil, nil
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close() //nolint:errcheck
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return storage.NewRedis(rdb, cfg.RedisPrefix), rdb.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

func runTUI(svc *services) error {
	app := tui.NewApp(tui.Options{
		API:      svc.client,
		Sessions: svc.sessions,
		Toasts:   svc.toasts,
		Logger:   svc.log.Named("tui"),
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

var errNotSignedIn = errors.New("not signed in")

func runWhoami(out io.Writer, sessions *auth.Manager) error {
	u := sessions.CurrentUser()
	if u == nil {
		printSignedOut(out)
		return errNotSignedIn
	}
	printUser(out, u)
	return nil
}

func runLogout(out io.Writer, sessions *auth.Manager) error {
	if sessions.CurrentUser() == nil {
		fmt.Fprintln(out, "Nenhuma sessão ativa.")
		return nil
	}
	sessions.SignOut()
	fmt.Fprintln(out, "Sessão encerrada.")
	return nil
}
