package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// pingHealthchecks reports the run outcome to a healthchecks.io style
// endpoint. Failed runs hit the "/fail" sub-path.
func pingHealthchecks(ctx context.Context, app *AppContext, cfg *Config, failed bool) {
	if !cfg.Healthchecks.Enabled || cfg.Healthchecks.PingURL == "" {
		return
	}

	url := strings.TrimRight(cfg.Healthchecks.PingURL, "/")
	if failed {
		url += "/fail"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("Healthchecks ping request error", "err", err)
		return
	}

	if app.HTTP == nil {
		app.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := app.HTTP.Do(req)
	if err != nil {
		slog.Warn("Healthchecks ping failed", "err", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Healthchecks ping rejected", "status", fmt.Sprintf("HTTP %d", resp.StatusCode))
		return
	}
	slog.Debug("Healthchecks ping sent", "failed", failed)
}
