package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/rocketmesh/internal/logger"
)

const watchDebounce = 300 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [design] [output.obj]",
	Short: "Re-export a design every time it is saved",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logger.Named("watch")
		export := func() error {
			return runExport(args[0], args[1], selected, cfg.Export, logger.Named("export"))
		}
		return watchDesign(ctx, args[0], watchDebounce, export, log)
	},
}

func init() {
	watchCmd.Flags().StringArrayVarP(&selected, "component", "c", nil, "Component name or ID to export")
}

// watchDesign runs fn once and then again after each burst of changes to
// path, until ctx is done. Failures of fn are logged and do not stop the
// watch.
func watchDesign(ctx context.Context, path string, debounce time.Duration, fn func() error, log *zap.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, so watch the
	// directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	run := func() {
		start := time.Now()
		if err := fn(); err != nil {
			log.Error("export failed", zap.Error(err))
			return
		}
		log.Info("export done", zap.Duration("took", time.Since(start)))
	}
	run()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	log.Info("watching", zap.String("design", abs))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("design changed", zap.Stringer("op", event.Op))
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			run()
		}
	}
}
