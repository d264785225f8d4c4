package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPFeed reports download progress for a single file fetched over
// HTTP or HTTPS.
type HTTPFeed struct {
	URL         string
	Destination string
	options     Options
	client      *http.Client
}

// NewHTTPFeed creates a feed that downloads URL to destination.
func NewHTTPFeed(url, destination string, opts Options) *HTTPFeed {
	return &HTTPFeed{
		URL:         url,
		Destination: destination,
		options:     opts,
		client:      &http.Client{},
	}
}

// Type returns the feed type.
func (h *HTTPFeed) Type() string {
	return "http"
}

// Run starts the download and streams progress until it finishes.
// Failed attempts are retried with a delay; the feed only fails after
// the final attempt.
func (h *HTTPFeed) Run(ctx context.Context) (<-chan Update, error) {
	if h.URL == "" {
		return nil, fmt.Errorf("http feed: url not set")
	}
	if h.Destination == "" {
		return nil, fmt.Errorf("http feed: destination not set")
	}

	updates := make(chan Update, 10)

	go func() {
		defer close(updates)

		updates <- Update{
			Phase:   PhaseConnecting,
			Percent: -1,
			Message: "Connecting...",
		}

		if err := os.MkdirAll(filepath.Dir(h.Destination), 0755); err != nil {
			updates <- Update{
				Phase: PhaseFailed,
				Err:   fmt.Errorf("failed to create directory: %w", err),
			}
			return
		}

		var lastErr error
		for attempt := 0; attempt <= h.options.RetryAttempts; attempt++ {
			if attempt > 0 {
				send(updates, Update{
					Phase:   PhaseConnecting,
					Percent: -1,
					Message: fmt.Sprintf("Retrying (%d/%d)...", attempt, h.options.RetryAttempts),
				})
				select {
				case <-time.After(h.options.RetryDelay):
				case <-ctx.Done():
					updates <- Update{Phase: PhaseFailed, Err: ctx.Err()}
					return
				}
			}

			hash, err := h.downloadFile(ctx, updates)
			if err == nil {
				updates <- Update{
					Phase:   PhaseComplete,
					Percent: 100,
					Message: hash,
				}
				return
			}
			if ctx.Err() != nil {
				updates <- Update{Phase: PhaseFailed, Err: ctx.Err()}
				return
			}
			lastErr = err
		}

		updates <- Update{
			Phase: PhaseFailed,
			Err:   fmt.Errorf("download failed after %d attempts: %w", h.options.RetryAttempts+1, lastErr),
		}
	}()

	return updates, nil
}

// downloadFile fetches one attempt and returns the SHA256 of the content.
func (h *HTTPFeed) downloadFile(ctx context.Context, updates chan<- Update) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return "", err
	}
	if h.options.UserAgent != "" {
		req.Header.Set("User-Agent", h.options.UserAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	send(updates, Update{
		Phase:   PhaseFetching,
		Percent: -1,
		Message: "Downloading...",
	})

	f, err := os.Create(h.Destination)
	if err != nil {
		return "", err
	}

	hasher := sha256.New()
	writer := io.MultiWriter(f, hasher)

	total := resp.ContentLength
	var done int64

	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := writer.Write(buf[:n]); werr != nil {
				_ = f.Close()
				_ = os.Remove(h.Destination)
				return "", werr
			}
			done += int64(n)

			if total > 0 {
				send(updates, Update{
					Phase:   PhaseFetching,
					Percent: 100 * float64(done) / float64(total),
				})
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = f.Close()
			_ = os.Remove(h.Destination)
			return "", err
		}
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(h.Destination)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
