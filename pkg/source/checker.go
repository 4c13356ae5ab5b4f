package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const checkParallelism = 4

// CheckSummary counts the outcome of one CheckAll pass.
type CheckSummary struct {
	OK     int
	Failed int
}

// Checker HEAD-checks every stored source URL and records availability.
type Checker struct {
	sources *SourceDB
	logger  *slog.Logger
	client  *http.Client
}

// NewChecker creates a Checker backed by sources.
func NewChecker(sources *SourceDB, logger *slog.Logger) *Checker {
	return &Checker{
		sources: sources,
		logger:  logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// CheckAll HEADs every source URL, a few at a time, and stores each result.
// A 2xx or 3xx status counts as available.
func (c *Checker) CheckAll(ctx context.Context) (CheckSummary, error) {
	var sum CheckSummary
	sources, err := c.sources.ListSources()
	if err != nil {
		return sum, err
	}

	type probe struct {
		status int
		err    error
	}
	probes := make([]probe, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkParallelism)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			probes[i].status, probes[i].err = c.checkOne(gctx, src.SourceURL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	for i, src := range sources {
		p := probes[i]
		var msg string
		if p.err != nil {
			msg = p.err.Error()
		}
		if err := c.sources.UpdateCheck(src.AdapterID, p.status, msg); err != nil {
			c.logger.Error("source check: update failed", "adapter", src.AdapterID, "error", err)
		}

		if p.status >= 200 && p.status < 400 {
			sum.OK++
			continue
		}
		sum.Failed++
		c.logger.Warn("source unavailable", "adapter", src.AdapterID, "url", src.SourceURL, "status", p.status, "error", msg)
	}

	c.logger.Info("source check complete", "ok", sum.OK, "failed", sum.Failed)
	return sum, nil
}

// checkOne returns the HTTP status of a HEAD request, or 0 on network error.
func (c *Checker) checkOne(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
