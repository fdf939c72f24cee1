package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"codeberg.org/miketth/ism/pkg/backend"
	"codeberg.org/miketth/ism/pkg/config"
	"codeberg.org/miketth/ism/pkg/inputsource"
	"codeberg.org/miketth/ism/pkg/switchstore/memory"
	"codeberg.org/miketth/ism/pkg/switchstore/sqlite"
	"codeberg.org/miketth/ism/pkg/zapjournal"
)

var version = "dev"

func main() {
	log.SetFlags(0)

	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.cmd.kind == cmdVersion {
		_, err := fmt.Fprintf(stdout, "ism %s\n", version)
		return err
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging, opts.debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if configPath != "" {
		log.Debugw("loaded config", "path", configPath)
	}

	store, closeStore, err := openSwitchStore(cfg.History, log)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warnw("could not close history", "error", err)
		}
	}()

	a := &app{
		cfg:   cfg,
		store: store,
		out:   stdout,
		log:   log,
		now:   time.Now,
	}

	// history only reads the store
	if opts.cmd.kind == cmdHistory {
		return a.execute(context.Background(), opts.cmd)
	}

	backendName := cfg.Backend
	if opts.backend != "" {
		backendName = opts.backend
	}

	service, closeBackend, err := backend.Open(backendName, cfg, log)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Warnw("could not close backend", "error", err)
		}
	}()

	a.service = service
	a.switcher = inputsource.NewSwitcher(service, log)

	return a.execute(context.Background(), opts.cmd)
}

// openSwitchStore returns the sqlite history when it is enabled and an
// in-memory store otherwise.
func openSwitchStore(cfg config.HistoryConfig, log *zap.SugaredLogger) (inputsource.SwitchStore, func() error, error) {
	if !cfg.Enabled {
		return memory.NewSwitchStore(), func() error { return nil }, nil
	}

	err := os.MkdirAll(filepath.Dir(cfg.Path), 0755)
	if err != nil {
		return nil, nil, fmt.Errorf("create history dir: %w", err)
	}

	store, err := sqlite.NewSwitchStore(cfg.Path, log)
	if err != nil {
		return nil, nil, err
	}

	return store, store.Close, nil
}

func newLogger(cfg config.LoggingConfig, debug bool) (*zap.SugaredLogger, error) {
	level, err := cfg.ZapLevel()
	if err != nil {
		return nil, err
	}
	if debug {
		level = zapcore.DebugLevel
	}

	loggerConfig := zap.NewDevelopmentConfig()

	// stdout carries command output
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	loggerConfig.Level = zap.NewAtomicLevelAt(level)
	loggerConfig.DisableStacktrace = true

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	if cfg.Journal && zapjournal.Available() {
		logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, zapjournal.NewCore(loggerConfig.Level))
		}))
	}

	return logger.Sugar(), nil
}
