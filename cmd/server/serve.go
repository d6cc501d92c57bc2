package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/api"
	"github.com/technosupport/site-safety/internal/audit"
	"github.com/technosupport/site-safety/internal/cameras"
	"github.com/technosupport/site-safety/internal/data"
	"github.com/technosupport/site-safety/internal/employees"
	"github.com/technosupport/site-safety/internal/logs"
	"github.com/technosupport/site-safety/internal/platform/paths"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address, overrides server.addr",
			},
		},
		Action: func(c *cli.Context) error {
			cc, err := newCommandContext(c)
			if err != nil {
				return err
			}
			defer cc.Logger.Sync()

			if addr := c.String("addr"); addr != "" {
				cc.Config.Server.Addr = addr
			}
			return runServer(c.Context, cc)
		},
	}
}

func runServer(parent context.Context, cc *commandContext) error {
	cfg, logger := cc.Config, cc.Logger

	st := cfg.Storage
	if err := paths.EnsureDirs(
		st.DataRoot,
		filepath.Dir(st.DetectionLog),
		filepath.Dir(st.Cameras),
		filepath.Dir(st.Employees),
		filepath.Dir(st.Audit),
	); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auditService := audit.NewService(st.Audit)
	logStore := logs.NewStore(st.DetectionLog, logger)
	camService := cameras.NewService(data.CameraModel{Path: st.Cameras}, auditService, logger)
	empService := employees.NewService(data.EmployeeModel{Path: st.Employees}, auditService, logger)

	if cfg.Watcher.Enabled {
		watcher := logs.NewWatcher(st.DetectionLog, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("detection log watcher stopped", zap.Error(err))
			}
		}()
	}

	router := api.NewRouter(api.Deps{
		Logs:           logStore,
		Cameras:        camService,
		Employees:      empService,
		Logger:         logger,
		WebRoot:        cfg.Web.Root,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("data_root", st.DataRoot),
			zap.String("web_root", cfg.Web.Root),
			zap.String("version", Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
