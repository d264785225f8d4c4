package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/windlass/ringview/pkg/feed"
)

var (
	cloneBranch string
	cloneDepth  int
)

var cloneCmd = &cobra.Command{
	Use:   "clone <url> [destination]",
	Short: "Clone a git repository with gauge progress",
	Long: `Clone a git repository while the gauge tracks transfer progress.

The gauge spins while connecting and sweeps to the percentages the
remote reports during the transfer. The destination defaults to the
repository name.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runClone,
}

func init() {
	cloneCmd.Flags().StringVarP(&cloneBranch, "branch", "b", "", "branch to clone")
	cloneCmd.Flags().IntVar(&cloneDepth, "depth", 0, "override clone depth")
	rootCmd.AddCommand(cloneCmd)
}

func runClone(cmd *cobra.Command, args []string) error {
	url := args[0]
	dest := repoDirFromURL(url)
	if len(args) > 1 {
		dest = args[1]
	}

	opts := feedOptions()
	opts.Branch = cloneBranch
	if cloneDepth > 0 {
		opts.Depth = cloneDepth
		opts.Shallow = true
	}

	f := feed.NewGitFeed(url, dest, opts)
	return runFeed(fmt.Sprintf("Cloning %s", url), dest, f)
}

// repoDirFromURL derives a directory name from a clone URL the way git
// does: the last path element with any .git suffix removed.
func repoDirFromURL(url string) string {
	name := url
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "repository"
	}
	return filepath.Clean(name)
}
