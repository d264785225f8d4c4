package main

import (
	"fmt"
	"net/url"
	"path"

	"github.com/spf13/cobra"

	"github.com/windlass/ringview/pkg/feed"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url> [destination]",
	Short: "Download a file with gauge progress",
	Long: `Download a file over HTTP or HTTPS while the gauge tracks progress.

When the server reports a content length the gauge sweeps to the
downloaded percentage; otherwise it spins until the transfer finishes.
The destination defaults to the file name from the URL.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	dest := fileNameFromURL(rawURL)
	if len(args) > 1 {
		dest = args[1]
	}

	f := feed.NewHTTPFeed(rawURL, dest, feedOptions())
	return runFeed(fmt.Sprintf("Fetching %s", rawURL), dest, f)
}

func fileNameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "download"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "download"
	}
	return name
}
