package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/Faultbox/rocketmesh/pkg/rocket"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	kindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	motorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var infoCmd = &cobra.Command{
	Use:   "info [design]",
	Short: "Show the component tree of a design",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(cmd.OutOrStdout(), args[0], cfg.Export.Configuration)
	},
}

func runInfo(w io.Writer, designPath, configID string) error {
	design, err := rocket.LoadFile(designPath)
	if err != nil {
		return err
	}
	flight, err := design.Configuration(configID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s  length %.3f m\n", nameStyle.Render(design.Rocket.Name), flight.Length())
	for _, fc := range design.Configurations {
		marker := " "
		if fc == flight {
			marker = "*"
		}
		fmt.Fprintf(w, "%s configuration %s %s\n", marker, fc.ID, dimStyle.Render(fc.Name))
	}
	fmt.Fprintln(w, componentTree(design.Rocket, flight))
	return nil
}

// componentTree renders c and its descendants with axial positions.
func componentTree(c *rocket.Component, flight *rocket.FlightConfiguration) *tree.Tree {
	t := tree.Root(componentLabel(c, flight)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(dimStyle)
	for _, ch := range c.Children() {
		if len(ch.Children()) == 0 {
			t.Child(componentLabel(ch, flight))
			continue
		}
		t.Child(componentTree(ch, flight))
	}
	return t
}

func componentLabel(c *rocket.Component, flight *rocket.FlightConfiguration) string {
	label := fmt.Sprintf("%s %s", nameStyle.Render(c.Name), kindStyle.Render(c.Kind.String()))
	if c.Parent() != nil {
		label += dimStyle.Render(fmt.Sprintf(" @ %.3f m", c.AbsolutePosition()))
	}
	if n := c.InstanceCountOrOne(); n > 1 {
		label += dimStyle.Render(fmt.Sprintf(" x%d", n))
	}
	if !flight.IsComponentActive(c) {
		label += dimStyle.Render(" (inactive)")
	}
	if motor, ok := flight.MotorFor(c); ok && c.IsMotorMount() {
		label += " " + motorStyle.Render(motor.Designation)
	}
	return label
}
