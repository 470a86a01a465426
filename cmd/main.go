package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dtroode/counterparty-client/internal/app"
	"github.com/dtroode/counterparty-client/internal/cli"
	"github.com/dtroode/counterparty-client/internal/config"
	"github.com/dtroode/counterparty-client/internal/logger"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Printf("failed to parse config: %v", err)
		return 1
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog.Close()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", cli.Message(err))
		logger.Fatal("failed to initialize client", "error", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("error during shutdown", "error", err)
		}
	}()

	var wg sync.WaitGroup
	if s, sl := a.MetricsServer(); s != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start metrics server", "error", err, "address", s.Address())
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Stop(shutdownCtx); err != nil {
				logger.Error("error during metrics server shutdown", "error", err, "address", s.Address())
			}
			wg.Wait()
		}()
	}

	root := cli.NewRootCmd(cli.Deps{Auth: a.Auth, Contractors: a.Contractors}, version())
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", cli.Message(err))
		return 1
	}
	return 0
}

func newLogger(cfg *config.Config) (*logger.Logger, io.Closer) {
	if cfg.LogFile == "" {
		return logger.New(cfg.LogLevel), nopCloser{}
	}
	return logger.NewWithFile(cfg.LogLevel, logger.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
}

func version() string {
	return fmt.Sprintf("%s (built %s, commit %s)", buildVersion, buildDate, buildCommit)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
