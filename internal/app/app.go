package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/metrics"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/session"
)

const (
	shutdownTimeout = 30 * time.Second
	sweepInterval   = time.Minute
)

// App serves the game API. Database, Redis and cookies are optional: a nil
// value disables the feature that needs it.
type App struct {
	logger    *slog.Logger
	router    *http.ServeMux
	db        *pgxpool.Pool
	redis     *redis.Client
	cookies   *config.Cookies
	ws        *config.WebSocket
	sessions  *session.Store
	rateLimit config.RateLimit
	ttl       time.Duration
	maxCells  int
}

type Options struct {
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Cookies   *config.Cookies
	RateLimit config.RateLimit
	TTL       time.Duration
	MaxCells  int
}

func New(logger *slog.Logger, opts Options) *App {
	app := &App{
		logger:    logger,
		router:    http.NewServeMux(),
		db:        opts.DB,
		redis:     opts.Redis,
		cookies:   opts.Cookies,
		ws:        config.NewWebSocket(config.Development()),
		sessions:  session.NewStore(),
		rateLimit: opts.RateLimit,
		ttl:       opts.TTL,
		maxCells:  opts.MaxCells,
	}
	app.loadRoutes()
	return app
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := config.BasePath(); base != "" {
		mux := http.NewServeMux()
		mux.Handle(base+"/", http.StripPrefix(base, a.router))
		h = mux
	}
	return middleware.Wrap(
		h,
		middleware.Auth(a.logger, a.cookies),
		middleware.Cors(config.AllowedOrigins()),
		middleware.Logging(a.logger),
	)
}

func (a *App) sweep(ctx context.Context) error {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := a.sessions.Sweep(a.ttl); n > 0 {
				a.logger.Debug("swept idle sessions", slog.Int("count", n))
			}
			metrics.Sessions.Set(float64(a.sessions.Len()))
		}
	}
}

func (a *App) Start(ctx context.Context) error {
	addr := config.Port()
	server := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.sweep(gCtx)
	})

	return g.Wait()
}
