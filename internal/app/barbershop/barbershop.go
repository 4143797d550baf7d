package barbershop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/barbershop/internal/cache"
	"github.com/magabrotheeeer/barbershop/internal/config"
	"github.com/magabrotheeeer/barbershop/internal/http/middlewarectx"
	"github.com/magabrotheeeer/barbershop/internal/lib/password"
	"github.com/magabrotheeeer/barbershop/internal/lib/sl"
	"github.com/magabrotheeeer/barbershop/internal/metrics"
	"github.com/magabrotheeeer/barbershop/internal/models"
	authservice "github.com/magabrotheeeer/barbershop/internal/services/auth"
	"github.com/magabrotheeeer/barbershop/internal/services/booking"
	"github.com/magabrotheeeer/barbershop/internal/services/catalog"
	"github.com/magabrotheeeer/barbershop/internal/services/contact"
	"github.com/magabrotheeeer/barbershop/internal/slotlock"
	"github.com/magabrotheeeer/barbershop/internal/storage"
	"github.com/magabrotheeeer/barbershop/internal/storage/file"
	"github.com/magabrotheeeer/barbershop/internal/storage/memory"
	"github.com/magabrotheeeer/barbershop/internal/storage/postgresql"
)

const shutdownTimeout = 15 * time.Second

// App держит HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     storage.Storage
	cache  *cache.Cache
}

// New собирает приложение: хранилище с seed, redis (если настроен), сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	return build(ctx, cfg, logger, prometheus.DefaultRegisterer)
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	const op = "app.barbershop.New"

	db, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(cfg.Admin.Password)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.Seed(ctx, models.User{Username: cfg.Admin.Username, Password: hash}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		redisCache  *cache.Cache
		catalogSink catalog.Cache = cache.Nop{}
		locker      slotlock.Locker
	)
	if cfg.RedisEnabled() {
		redisCache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		catalogSink = redisCache
		locker = slotlock.NewRedis(redisCache.Db, cfg.SlotLockTTL, logger)
		logger.Info("redis enabled", slog.String("address", cfg.AddressRedis))
	} else {
		locker = slotlock.NewLocal()
		logger.Info("redis is not configured, using in-process slot lock")
	}

	m := metrics.New(reg)
	svc := Services{
		Booking:  booking.New(db, locker, m, logger),
		Catalog:  catalog.New(db, catalogSink, cfg.CacheTTL, logger),
		Contact:  contact.New(db, logger),
		Verifier: authservice.NewStoreVerifier(db, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, m, middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst), cfg.TrustProxy)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  redisCache,
	}, nil
}

// newStorage выбирает реализацию хранилища по storage.driver.
func newStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverFile:
		s, err := file.New(cfg.DataDir, logger, file.WithStrictWrites(cfg.StrictWrites))
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgresql.New(ctx, cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Handler возвращает корневой обработчик запросов.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP-сервер и останавливает его после отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.Close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.Close()
		return err
	}
}

// Close освобождает хранилище и подключение к redis.
func (a *App) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
}
