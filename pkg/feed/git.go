package feed

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFeed reports clone progress for a git repository. Percentages are
// parsed from the transfer progress the remote sends over the sideband.
type GitFeed struct {
	URL         string
	Destination string
	options     Options
}

// NewGitFeed creates a feed that clones URL into destination.
func NewGitFeed(url, destination string, opts Options) *GitFeed {
	return &GitFeed{
		URL:         url,
		Destination: destination,
		options:     opts,
	}
}

// Type returns the feed type.
func (g *GitFeed) Type() string {
	return "git"
}

// Run starts the clone and streams progress until it finishes.
func (g *GitFeed) Run(ctx context.Context) (<-chan Update, error) {
	if g.URL == "" {
		return nil, fmt.Errorf("git feed: url not set")
	}
	if g.Destination == "" {
		return nil, fmt.Errorf("git feed: destination not set")
	}

	updates := make(chan Update, 10)

	go func() {
		defer close(updates)

		updates <- Update{
			Phase:   PhaseConnecting,
			Percent: -1,
			Message: "Connecting to remote...",
		}

		opts := &git.CloneOptions{
			URL:      g.URL,
			Progress: &progressWriter{updates: updates},
		}
		if g.options.Shallow && g.options.Depth > 0 {
			opts.Depth = g.options.Depth
		}
		if g.options.Branch != "" {
			opts.ReferenceName = plumbing.NewBranchReferenceName(g.options.Branch)
			opts.SingleBranch = true
		}

		repo, err := git.PlainCloneContext(ctx, g.Destination, false, opts)
		if err != nil {
			updates <- Update{
				Phase: PhaseFailed,
				Err:   fmt.Errorf("clone failed: %w", err),
			}
			return
		}

		head, err := repo.Head()
		if err != nil {
			updates <- Update{
				Phase: PhaseFailed,
				Err:   fmt.Errorf("failed to resolve HEAD: %w", err),
			}
			return
		}

		updates <- Update{
			Phase:   PhaseComplete,
			Percent: 100,
			Message: head.Hash().String(),
		}
	}()

	return updates, nil
}

// progressWriter turns the sideband progress stream into updates. Git
// overwrites progress lines with \r, so input is split on both \r and \n.
type progressWriter struct {
	updates chan<- Update
	buf     []byte
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexAny(w.buf, "\r\n")
		if i < 0 {
			break
		}
		line := string(w.buf[:i])
		w.buf = w.buf[i+1:]
		if line == "" {
			continue
		}

		update := Update{
			Phase:   PhaseFetching,
			Percent: -1,
			Message: line,
		}
		if pct := extractPercent(line); pct >= 0 {
			update.Percent = float64(pct)
		}
		send(w.updates, update)
	}
	return len(p), nil
}

var percentRegex = regexp.MustCompile(`(\d+)%`)

// extractPercent pulls a percentage out of a progress line, or -1.
func extractPercent(s string) int {
	matches := percentRegex.FindStringSubmatch(s)
	if len(matches) < 2 {
		return -1
	}
	pct, err := strconv.Atoi(matches[1])
	if err != nil || pct > 100 {
		return -1
	}
	return pct
}
