package domain

import (
	"context"
	"time"
)

// Target is one channel to track, read from the input file
type Target struct {
	ChannelID string
	Label     string
}

// VideoStats holds the statistics of a single recent upload
type VideoStats struct {
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
}

// ChannelSnapshot is the state of a channel at capture time.
// Produced once per fetch and never mutated afterwards.
type ChannelSnapshot struct {
	ChannelID    string       `json:"channel_id"`
	Title        string       `json:"title"`
	Subscribers  int64        `json:"subscribers"`
	TotalViews   int64        `json:"total_views"`
	VideoCount   int64        `json:"video_count"`
	RecentVideos []VideoStats `json:"recent_videos"`
	FetchedAt    time.Time    `json:"fetched_at"`
}

// DerivedMetrics are the ratios computed from a snapshot
type DerivedMetrics struct {
	AvgViewsPerVideo float64 `json:"avg_views_per_video"`
	EngagementRate   float64 `json:"engagement_rate"`
	UploadsPerDay    float64 `json:"uploads_per_day"`
}

// ComparisonRow is the per-channel result of one tracker run.
// Exactly one of Snapshot or Failure is set.
type ComparisonRow struct {
	ChannelID string
	Snapshot  *ChannelSnapshot
	Metrics   DerivedMetrics
	Failure   *FetchError
}

// Failed reports whether this row is a failure marker
func (r ComparisonRow) Failed() bool {
	return r.Failure != nil
}

// Collector defines the interface for channel data fetching
type Collector interface {
	FetchChannel(ctx context.Context, channelID string) (*ChannelSnapshot, error)
}
