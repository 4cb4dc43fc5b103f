package collector

import (
	"context"
	"fmt"

	"yt-growth-tracker/internal/config"
	"yt-growth-tracker/internal/domain"
)

// NewCollector selects the correct implementation based on the configured mode
func NewCollector(ctx context.Context, cfg config.Config) (domain.Collector, error) {
	switch cfg.CollectorMode {
	case "api":
		return NewAPIClient(ctx, cfg.APIKey, cfg.MaxVideos, cfg.Timeout())
	case "rest":
		return NewRESTClient(cfg.APIKey, cfg.MaxVideos, cfg.Timeout())
	case "mock":
		return NewMockClient(cfg.MaxVideos), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'rest', or 'mock')", cfg.CollectorMode)
	}
}
