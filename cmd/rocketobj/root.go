package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/rocketmesh/internal/config"
	"github.com/Faultbox/rocketmesh/internal/logger"
)

// cfg is the effective configuration, loaded before any command runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:           "rocketobj",
	Short:         "Export rocket designs as Wavefront OBJ meshes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger.Debug("config loaded",
			zap.String("lod", cfg.Export.LOD),
			zap.Int("workers", cfg.Export.Workers))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().AddFlagSet(config.Flags)
	rootCmd.AddCommand(exportCmd, infoCmd, inspectCmd, watchCmd, configCmd)
}
