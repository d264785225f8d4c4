package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/windlass/ringview/pkg/ui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Interactive gauge demo",
	Long: `Run the gauge with keyboard controls instead of a progress source.

Press 's' to start spinning, 'x' to wind the spinner down, 'r' to
animate to a random value, 'i' to jump to a random value instantly,
and 0-9 to animate to a fixed target.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if quiet {
		return fmt.Errorf("demo requires the interactive gauge; drop --quiet")
	}

	scheduler := ui.NewProgramScheduler()
	model := ui.NewModel(cfg, scheduler, "Ringview Demo", true)
	runner := ui.NewRunner(model, scheduler, tea.WithAltScreen())

	if _, err := runner.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}
