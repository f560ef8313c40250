package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/shieldsweeper/internal/config"
	"github.com/vancomm/shieldsweeper/internal/database"
	"github.com/vancomm/shieldsweeper/internal/layout"
	"github.com/vancomm/shieldsweeper/internal/middleware"
	"github.com/vancomm/shieldsweeper/internal/repository"
	"github.com/vancomm/shieldsweeper/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log      *logrus.Logger
	cfg      *config.Config
	router   *http.ServeMux
	registry *session.Registry
	tokens   *session.Tokens
	db       *pgxpool.Pool
	repo     *repository.Queries
}

func New(log *logrus.Logger, cfg *config.Config, l layout.Layout) (*App, error) {
	j, err := config.NewJWT(cfg.Session.Secret, cfg.Session.TokenLifetime)
	if err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		log.Warn("session.secret is not set, using a random one")
	}

	a := &App{
		log:    log,
		cfg:    cfg,
		router: http.NewServeMux(),
		tokens: session.NewTokens(j),
	}
	a.registry = session.NewRegistry(log, l, session.Options{
		TTL:           cfg.Session.TTL,
		Tick:          cfg.Session.Tick,
		SweepInterval: cfg.Session.SweepInterval,
		MaxSessions:   cfg.Session.MaxSessions,
		OnFinish:      a.recordResult,
	})
	a.loadRoutes()
	return a, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Cors(a.cfg.Origins...),
	)
}

// Start serves until ctx is done. The records store is connected and
// migrated first when postgres is configured.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.Postgres.Enabled() {
		db, err := database.ConnectAndMigrate(ctx, a.cfg.Postgres)
		if err != nil {
			return fmt.Errorf("unable to connect to db: %w", err)
		}
		defer db.Close()
		a.db = db
		a.repo = repository.New(db)
	} else {
		a.log.Info("postgres is not configured, records are disabled")
	}

	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", a.cfg.Addr).Info("server listening")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.registry.Run(gCtx)
	})

	return g.Wait()
}
