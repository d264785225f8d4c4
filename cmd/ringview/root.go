package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/windlass/ringview/pkg/config"
	"github.com/windlass/ringview/pkg/feed"
	"github.com/windlass/ringview/pkg/ui"
)

var (
	// Global flags
	cfgFile string
	quiet   bool
	noColor bool

	// Loaded config
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ringview",
	Short: "Ringview - animated circular progress gauge for the terminal",
	Long: `Ringview renders an animated circular progress gauge in the terminal.
It spins while an operation's extent is unknown and sweeps smoothly to
reported percentages once progress becomes determinate.

Use 'ringview demo' to try the animations, 'ringview clone' or
'ringview fetch' to track real transfers, or 'ringview watch' to follow
a configured source or host metric.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		if cmd.Name() == "init" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		// An explicit config file must load; otherwise defaults apply
		// when none is found.
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		}

		cfgPath, findErr := config.FindConfigFile()
		if findErr != nil {
			cfg = config.NewDefaultConfig()
			return nil
		}
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "plain line output instead of the gauge")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func Execute() error {
	return rootCmd.Execute()
}

// runFeed displays a feed on the gauge, or as plain lines with --quiet.
func runFeed(title, name string, f feed.Feed) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	updates, err := f.Run(ctx)
	if err != nil {
		return err
	}

	if quiet {
		return runFeedSimple(name, updates)
	}

	scheduler := ui.NewProgramScheduler()
	model := ui.NewModel(cfg, scheduler, title, false)
	runner := ui.NewRunner(model, scheduler, tea.WithAltScreen())
	runner.Pump(ctx, updates)

	if _, err := runner.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}

func runFeedSimple(name string, updates <-chan feed.Update) error {
	out := ui.NewSimpleOutput(name)
	for u := range updates {
		out.Update(u)
	}
	if out.Failed() {
		return fmt.Errorf("%s failed", name)
	}
	return nil
}

// feedOptions builds feed options from the loaded config.
func feedOptions() feed.Options {
	return feed.Options{
		Depth:          cfg.Git.CloneDepth,
		Shallow:        cfg.Git.ShallowClone,
		UserAgent:      cfg.HTTP.UserAgent,
		RetryAttempts:  cfg.HTTP.RetryAttempts,
		RetryDelay:     cfg.HTTP.RetryDelay,
		SampleInterval: cfg.Animation.SampleInterval,
	}
}
