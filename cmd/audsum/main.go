// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ik5/audsum"
	"github.com/ik5/audsum/config"
	"github.com/ik5/audsum/magic"
	"github.com/ik5/audsum/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set via ldflags at build time.
var version = "dev"

type cli struct {
	Paths    []string         `arg:"" name:"path" help:"Audio files or directories to checksum." type:"path"`
	Config   string           `help:"YAML configuration file." type:"existingfile"`
	Workers  int              `help:"Files hashed at once. Defaults to one per CPU."`
	Cache    string           `help:"Checksum cache directory." type:"path"`
	Strict   bool             `help:"Compare per-channel digests when looking for duplicates."`
	Progress bool             `help:"Show a progress bar on stderr."`
	LogLevel string           `help:"Log level: debug, info, warn or error."`
	Dupes    bool             `help:"Report files with equal checksums."`
	Version  kong.VersionFlag `help:"Show version information."`
}

var CLI cli

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("audsum"),
		kong.Description("Print content checksums of FLAC, MP3 and Ogg Vorbis files."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	cfg, err := loadConfig(&CLI)
	ctx.FatalIfErrorf(err)

	logger, err := newLogger(cfg)
	ctx.FatalIfErrorf(err)

	os.Exit(execute(cfg, logger.Sugar(), CLI.Paths))
}

// execute runs the checksums and returns the exit status.
func execute(cfg *config.Config, logger *zap.SugaredLogger, paths []string) int {
	defer logger.Sync()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []magic.Option
	for _, f := range cfg.SignatureFiles {
		opts = append(opts, magic.WithSignatureFile(f))
	}

	r := &runner{
		engine: audsum.New(
			audsum.WithClassifier(audsum.NewClassifier(opts...)),
			audsum.WithLogger(logger.Desugar()),
		),
		logger:  logger,
		out:     os.Stdout,
		workers: cfg.Concurrency(),
		strict:  cfg.Strict,
		dupes:   CLI.Dupes,
	}
	if CLI.Progress {
		r.progress = os.Stderr
	}

	if cfg.CacheDir != "" {
		cache, err := store.Open(cfg.CacheDir, logger.Desugar())
		if err != nil {
			logger.Errorw("open cache", "dir", cfg.CacheDir, "error", err)
			return 2
		}
		defer cache.Close()
		r.cache = cache
	}

	failed, err := r.run(sigCtx, paths)
	if err != nil {
		logger.Errorw("interrupted", "error", err)
		return 2
	}
	if failed > 0 {
		logger.Infow("done with failures", "failed", failed)
		return 1
	}

	return 0
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set on top of it.
func loadConfig(c *cli) (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		var err error
		if cfg, err = config.Load(c.Config); err != nil {
			return nil, err
		}
	}

	if c.Workers != 0 {
		cfg.Workers = c.Workers
	}
	if c.Cache != "" {
		cfg.CacheDir = c.Cache
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	cfg.Strict = cfg.Strict || c.Strict

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}
