package metrics

import (
	"yt-growth-tracker/internal/domain"
)

const hoursPerDay = 24

// Derive computes the comparison ratios for one snapshot. It never fails:
// every degenerate sample (empty, single video, zero views, zero time span)
// yields a defined zero value instead of an error.
func Derive(s *domain.ChannelSnapshot) domain.DerivedMetrics {
	var m domain.DerivedMetrics
	if s == nil || len(s.RecentVideos) == 0 {
		return m
	}

	var viewSum, interactionSum int64
	for _, v := range s.RecentVideos {
		viewSum += v.Views
		interactionSum += v.Likes + v.Comments
	}

	n := len(s.RecentVideos)
	m.AvgViewsPerVideo = float64(viewSum) / float64(n)

	if viewSum > 0 {
		m.EngagementRate = float64(interactionSum) / float64(viewSum)
	}

	m.UploadsPerDay = uploadsPerDay(s.RecentVideos)
	return m
}

// uploadsPerDay spreads n-1 upload intervals over the publish-time span of
// the sample. Fewer than 2 videos or a zero span means no measurable cadence.
func uploadsPerDay(videos []domain.VideoStats) float64 {
	if len(videos) < 2 {
		return 0
	}

	earliest, latest := videos[0].PublishedAt, videos[0].PublishedAt
	for _, v := range videos[1:] {
		if v.PublishedAt.Before(earliest) {
			earliest = v.PublishedAt
		}
		if v.PublishedAt.After(latest) {
			latest = v.PublishedAt
		}
	}

	spanDays := latest.Sub(earliest).Hours() / hoursPerDay
	if spanDays <= 0 {
		return 0
	}
	return float64(len(videos)-1) / spanDays
}
