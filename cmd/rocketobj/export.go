package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/rocketmesh/internal/config"
	"github.com/Faultbox/rocketmesh/internal/logger"
	"github.com/Faultbox/rocketmesh/pkg/objexport"
	"github.com/Faultbox/rocketmesh/pkg/rocket"
)

var selected []string

var exportCmd = &cobra.Command{
	Use:   "export [design] [output.obj]",
	Short: "Write a design, or selected components of it, to an OBJ file",
	Long: `Reads a YAML or TOML rocket design and writes it as a Wavefront OBJ
mesh with a matching MTL material library.

Use --component (repeatable) to export only some components by name or ID.
Without it the whole rocket is exported.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0], args[1], selected, cfg.Export, logger.Named("export"))
	},
}

func init() {
	exportCmd.Flags().StringArrayVarP(&selected, "component", "c", nil, "Component name or ID to export")
}

// runExport loads the design at designPath and exports it to outPath.
func runExport(designPath, outPath string, names []string, ec config.ExportConfig, log *zap.Logger) error {
	design, err := rocket.LoadFile(designPath)
	if err != nil {
		return err
	}
	flight, err := design.Configuration(ec.Configuration)
	if err != nil {
		return err
	}
	components, err := selectComponents(design.Rocket, names)
	if err != nil {
		return err
	}
	opts, err := ec.Options()
	if err != nil {
		return err
	}

	log.Info("exporting",
		zap.String("design", designPath),
		zap.String("output", outPath),
		zap.String("configuration", flight.ID),
		zap.Int("components", len(components)))

	return objexport.NewExporter(components, flight, outPath, opts, objexport.WithLogger(log)).Export()
}

// selectComponents resolves names to components of root. No names selects
// every component.
func selectComponents(root *rocket.Component, names []string) ([]*rocket.Component, error) {
	if len(names) == 0 {
		return root.Descendants(), nil
	}
	out := make([]*rocket.Component, 0, len(names))
	for _, n := range names {
		c := root.Find(n)
		if c == nil {
			return nil, fmt.Errorf("%w: no component named %q", rocket.ErrInvalidDesign, n)
		}
		out = append(out, c)
	}
	return out, nil
}
