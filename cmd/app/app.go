package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tokobajukeren/pos-api/internal/api"
	"github.com/tokobajukeren/pos-api/internal/config"
	"github.com/tokobajukeren/pos-api/internal/db"
	"github.com/tokobajukeren/pos-api/internal/logger"
)

const defaultConfigPath = "./cmd/app/config.yml"

// ConfigPath is the config file used by the server and posctl. CONFIG_PATH
// overrides the default.
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultConfigPath
}

func Start() error {
	path := ConfigPath()
	conf, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	applyLogLevel(conf)

	gdb, err := db.Open(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			zap.L().Warn("failed to close database", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := api.NewServer(conf, gdb)
	defer s.Close()

	if err = s.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap -> %w", err)
	}

	err = config.Watch(path, applyLogLevel, func(err error) {
		zap.L().Warn("ignoring invalid config change", zap.Error(err))
	})
	if err != nil {
		zap.L().Warn("config file will not be watched", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + conf.API.Port,
		Handler: s.Router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.API.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down the server -> %w", err)
		}
		return nil
	})

	return g.Wait()
}

func applyLogLevel(conf *config.AppConfig) {
	if conf.Log == nil || conf.Log.Level == "" {
		return
	}
	if err := logger.SetLevel(conf.Log.Level); err != nil {
		zap.L().Warn("invalid log level", zap.String("level", conf.Log.Level), zap.Error(err))
		return
	}
	zap.L().Info("log level set", zap.String("level", conf.Log.Level))
}
