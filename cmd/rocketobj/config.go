package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rocketobj settings",
}

var configSaveCmd = &cobra.Command{
	Use:   "save [path]",
	Short: "Write the effective settings to a config file",
	Long: `Writes the settings in effect (defaults, config file and flags merged)
as YAML. Without a path the file goes to the user config directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
		} else {
			var err error
			if path, err = cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSaveCmd)
}
