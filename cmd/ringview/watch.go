package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/windlass/ringview/pkg/config"
	"github.com/windlass/ringview/pkg/feed"
)

var watchMetric string

var watchCmd = &cobra.Command{
	Use:   "watch [source]",
	Short: "Watch a configured source or host metric",
	Long: `Watch a source defined in the configuration file, or a host metric.

With a source name, the source's type decides what the gauge tracks: a
git source clones, an http source downloads, and a system source
samples continuously. Without a name, --metric selects a host metric.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchMetric, "metric", "m", "cpu", "host metric to sample (cpu, memory)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return watchHostMetric()
	}
	return watchSource(args[0])
}

func watchHostMetric() error {
	f := feed.NewSystemFeed(feed.Metric(watchMetric), feedOptions())
	return runFeed(fmt.Sprintf("Watching %s", watchMetric), watchMetric, f)
}

func watchSource(name string) error {
	src, ok := cfg.GetSource(name)
	if !ok {
		return fmt.Errorf("source not found: %s", name)
	}

	dest, err := sourceDestination(src)
	if err != nil {
		return err
	}

	f, err := feed.NewFromSource(src, cfg, dest)
	if err != nil {
		return err
	}

	// Samples carry the source's unit label when one is configured.
	if src.Unit != "" {
		cfg.Gauge.Unit = src.Unit
		cfg.Gauge.ShowUnit = true
	}

	return runFeed(fmt.Sprintf("Watching %s", name), name, f)
}

// sourceDestination picks where a transfer source lands: a temp
// directory for clones, a temp file path for downloads. System sources
// have no destination.
func sourceDestination(src *config.Source) (string, error) {
	switch src.Type {
	case config.SourceTypeGit, config.SourceTypeHTTP:
		dir, err := os.MkdirTemp("", "ringview-"+src.Name+"-")
		if err != nil {
			return "", fmt.Errorf("failed to create destination: %w", err)
		}
		return filepath.Join(dir, src.Name), nil
	default:
		return "", nil
	}
}
