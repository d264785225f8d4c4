package feed

import (
	"fmt"
	"strings"

	"github.com/windlass/ringview/pkg/config"
)

// New creates a Feed based on the source type.
func New(kind config.SourceType, url, destination string, opts Options) (Feed, error) {
	switch kind {
	case config.SourceTypeGit:
		return NewGitFeed(url, destination, opts), nil
	case config.SourceTypeHTTP:
		return NewHTTPFeed(url, destination, opts), nil
	case config.SourceTypeSystem:
		return NewSystemFeed(Metric(url), opts), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", kind)
	}
}

// NewFromSource creates a Feed from a source configuration.
func NewFromSource(src *config.Source, cfg *config.Config, destination string) (Feed, error) {
	opts := Options{
		Depth:          src.GetDepth(cfg.Git.CloneDepth),
		Shallow:        src.IsShallow(cfg.Git.ShallowClone),
		UserAgent:      cfg.HTTP.UserAgent,
		RetryAttempts:  cfg.HTTP.RetryAttempts,
		RetryDelay:     cfg.HTTP.RetryDelay,
		SampleInterval: src.GetInterval(cfg.Animation.SampleInterval),
	}

	switch src.Type {
	case config.SourceTypeSystem:
		return NewSystemFeed(Metric(src.GetMetric()), opts), nil
	default:
		return New(src.Type, src.URL, destination, opts)
	}
}

// DetectType attempts to detect the source type from the URL.
func DetectType(url string) config.SourceType {
	// Git URLs
	if strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "git://") ||
		strings.HasSuffix(url, ".git") ||
		strings.Contains(url, "github.com") ||
		strings.Contains(url, "gitlab.com") ||
		strings.Contains(url, "bitbucket.org") {
		return config.SourceTypeGit
	}

	// HTTP URLs
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return config.SourceTypeHTTP
	}

	// Default to git
	return config.SourceTypeGit
}
