package report

import (
	"fmt"
	"io"
	"sort"

	"yt-growth-tracker/internal/domain"
)

// Print writes a human readable comparison summary, successful channels
// first sorted by subscribers descending, then one line per failure.
func Print(w io.Writer, rows []domain.ComparisonRow) {
	var ok, failed []domain.ComparisonRow
	for _, r := range rows {
		if r.Failed() {
			failed = append(failed, r)
		} else {
			ok = append(ok, r)
		}
	}

	sort.SliceStable(ok, func(i, j int) bool {
		return ok[i].Snapshot.Subscribers > ok[j].Snapshot.Subscribers
	})

	fmt.Fprintln(w, "Comparison Results")
	fmt.Fprintln(w, "==================")
	for _, r := range ok {
		s := r.Snapshot
		fmt.Fprintf(w, "\n%s (%s)\n", s.Title, s.ChannelID)
		fmt.Fprintf(w, "  Subscribers:     %d\n", s.Subscribers)
		fmt.Fprintf(w, "  Total Views:     %d\n", s.TotalViews)
		fmt.Fprintf(w, "  Videos:          %d\n", s.VideoCount)
		fmt.Fprintf(w, "  Avg Views/Video: %.0f\n", r.Metrics.AvgViewsPerVideo)
		fmt.Fprintf(w, "  Engagement Rate: %.4f\n", r.Metrics.EngagementRate)
		fmt.Fprintf(w, "  Upload Freq:     %.2f videos/day\n", r.Metrics.UploadsPerDay)
	}

	if len(failed) > 0 {
		fmt.Fprintln(w, "\nFailures")
		fmt.Fprintln(w, "--------")
		for _, r := range failed {
			fmt.Fprintf(w, "%s: %s\n", r.ChannelID, r.Failure.Kind)
		}
	}
}
