package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"yt-growth-tracker/internal/domain"
)

// Header is the fixed column set of the comparison artifact
var Header = []string{
	"channel_id",
	"title",
	"subscribers",
	"total_views",
	"total_videos",
	"avg_views_per_video",
	"engagement_rate",
	"uploads_per_day",
	"fetched_at",
	"error",
}

// WriteCSV serializes rows to path, one data row per channel plus the
// header. Failure rows keep their channel ID and carry the failure kind in
// the error column; numeric columns stay empty so partial success is visible
// in the artifact instead of silently dropped.
func WriteCSV(path string, rows []domain.ComparisonRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}

	for _, row := range rows {
		if err := w.Write(encodeRow(row)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func encodeRow(row domain.ComparisonRow) []string {
	if row.Failed() {
		rec := make([]string, len(Header))
		rec[0] = row.ChannelID
		rec[len(rec)-1] = string(row.Failure.Kind)
		return rec
	}

	s := row.Snapshot
	return []string{
		row.ChannelID,
		s.Title,
		strconv.FormatInt(s.Subscribers, 10),
		strconv.FormatInt(s.TotalViews, 10),
		strconv.FormatInt(s.VideoCount, 10),
		formatFloat(row.Metrics.AvgViewsPerVideo),
		formatFloat(row.Metrics.EngagementRate),
		formatFloat(row.Metrics.UploadsPerDay),
		s.FetchedAt.UTC().Format(time.RFC3339),
		"",
	}
}

// formatFloat keeps numbers plain decimal, never locale dependent
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadCSV parses an artifact written by WriteCSV back into rows. Used by
// the dashboard and lets callers verify a run without re-fetching.
func ReadCSV(path string) ([]domain.ComparisonRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)

	// Header first
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%s: missing header", path)
		}
		return nil, err
	}

	var rows []domain.ComparisonRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) != len(Header) {
			return nil, fmt.Errorf("%s: want %d columns, got %d", path, len(Header), len(rec))
		}

		row, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow(rec []string) (domain.ComparisonRow, error) {
	channelID := rec[0]
	if kind := rec[len(rec)-1]; kind != "" {
		return domain.ComparisonRow{
			ChannelID: channelID,
			Failure:   domain.NewFetchError(domain.FailureKind(kind), channelID, nil),
		}, nil
	}

	subscribers, err := strconv.ParseInt(rec[2], 10, 64)
	if err != nil {
		return domain.ComparisonRow{}, fmt.Errorf("subscribers: %w", err)
	}
	totalViews, err := strconv.ParseInt(rec[3], 10, 64)
	if err != nil {
		return domain.ComparisonRow{}, fmt.Errorf("total_views: %w", err)
	}
	videoCount, err := strconv.ParseInt(rec[4], 10, 64)
	if err != nil {
		return domain.ComparisonRow{}, fmt.Errorf("total_videos: %w", err)
	}
	avgViews, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return domain.ComparisonRow{}, fmt.Errorf("avg_views_per_video: %w", err)
	}
	engagement, err := strconv.ParseFloat(rec[6], 64)
	if err != nil {
		return domain.ComparisonRow{}, fmt.Errorf("engagement_rate: %w", err)
	}
	uploadsPerDay, err := strconv.ParseFloat(rec[7], 64)
	if err != nil {
		return domain.ComparisonRow{}, fmt.Errorf("uploads_per_day: %w", err)
	}
	fetchedAt, err := time.Parse(time.RFC3339, rec[8])
	if err != nil {
		return domain.ComparisonRow{}, fmt.Errorf("fetched_at: %w", err)
	}

	return domain.ComparisonRow{
		ChannelID: channelID,
		Snapshot: &domain.ChannelSnapshot{
			ChannelID:   channelID,
			Title:       rec[1],
			Subscribers: subscribers,
			TotalViews:  totalViews,
			VideoCount:  videoCount,
			FetchedAt:   fetchedAt,
		},
		Metrics: domain.DerivedMetrics{
			AvgViewsPerVideo: avgViews,
			EngagementRate:   engagement,
			UploadsPerDay:    uploadsPerDay,
		},
	}, nil
}
