package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/technosupport/site-safety/internal/config"
	"github.com/technosupport/site-safety/internal/platform/paths"
)

// commandContext is shared by every subcommand.
type commandContext struct {
	Logger *zap.Logger
	Config *config.Config
}

func newCommandContext(c *cli.Context) (*commandContext, error) {
	if err := config.LoadDotEnv(c.StringSlice("env-file")...); err != nil {
		return nil, err
	}

	cfg, err := config.Load(paths.ResolveConfigPath(c.String("config")))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Logging, c.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &commandContext{Logger: logger, Config: cfg}, nil
}

func newLogger(lc config.LoggingConfig, debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if lc.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zc.Build()
}
