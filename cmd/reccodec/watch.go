package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/solidcoredata/reccodec/internal/config"
	"github.com/solidcoredata/reccodec/internal/runner"
	"github.com/solidcoredata/reccodec/rectype"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func watchCmd() *cobra.Command {
	var typeFile, configFile string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll a directory for wire-format files and decode each as it appears",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWatch(typeFile, configFile)
		},
	}
	cmd.Flags().StringVar(&typeFile, "type", "", "path to a type schema JSON file (required)")
	cmd.Flags().StringVar(&configFile, "config", "", "path to a TOML configuration file (required)")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("config")
	return cmd
}

func runWatch(typeFile, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	typ, err := readRecordType(typeFile)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	seen := make(map[string]bool)
	counts := make(chan int)
	poll := func(ctx context.Context) error {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				scanOnce(ctx, logger, typ, cfg.Watch.Dir, seen, counts)
			}
		}
	}
	report := func(ctx context.Context) error {
		total := 0
		for {
			select {
			case <-ctx.Done():
				return nil
			case n := <-counts:
				total += n
				logger.Info("running total", zap.Int("records_decoded", total))
			}
		}
	}

	run := func(ctx context.Context) error {
		return runner.RunAll(ctx, poll, report)
	}
	return runner.Run(context.Background(), cfg.Watch.Duration(), run)
}

func scanOnce(ctx context.Context, logger *zap.Logger, typ *rectype.RecordType, dir string, seen map[string]bool, counts chan<- int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("reading watch directory failed", zap.String("dir", dir), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || seen[entry.Name()] {
			continue
		}
		seen[entry.Name()] = true
		path := filepath.Join(dir, entry.Name())
		buf, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("read failed", zap.String("file", path), zap.Error(err))
			continue
		}
		recs, err := recordsFromBuffer(typ, buf)
		if err != nil {
			logger.Warn("decode failed", zap.String("file", path), zap.Error(err))
			continue
		}
		logger.Info("decoded file", zap.String("file", path), zap.Int("records", len(recs)))
		select {
		case counts <- len(recs):
		case <-ctx.Done():
		}
	}
}
