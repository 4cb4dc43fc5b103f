package comparator

import (
	"context"
	"log/slog"

	"yt-growth-tracker/internal/domain"
	"yt-growth-tracker/internal/metrics"
)

// Run fetches and scores every target in order, one at a time. Fetching is
// sequential on purpose: the upstream API is quota limited and a burst of
// parallel requests buys nothing here.
//
// The returned slice always has one row per input target, in input order. A
// fetch failure becomes a failure marker on that row; it never aborts the
// batch. Context cancellation stops issuing further fetches and the rows
// collected so far are returned.
func Run(ctx context.Context, collector domain.Collector, targets []domain.Target) []domain.ComparisonRow {
	rows := make([]domain.ComparisonRow, 0, len(targets))

	for _, t := range targets {
		select {
		case <-ctx.Done():
			return rows
		default:
		}

		slog.Info("Fetching channel", "channel", t.ChannelID, "label", t.Label)

		snapshot, err := collector.FetchChannel(ctx, t.ChannelID)
		if err != nil {
			fe, ok := domain.AsFetchError(err)
			if !ok {
				fe = domain.NewFetchError(domain.KindMalformed, t.ChannelID, err)
			}
			slog.Error("Fetch failed", "channel", t.ChannelID, "kind", string(fe.Kind), "err", err)
			rows = append(rows, domain.ComparisonRow{
				ChannelID: t.ChannelID,
				Failure:   fe,
			})
			continue
		}

		rows = append(rows, domain.ComparisonRow{
			ChannelID: t.ChannelID,
			Snapshot:  snapshot,
			Metrics:   metrics.Derive(snapshot),
		})
		slog.Info("Completed", "channel", t.ChannelID, "title", snapshot.Title)
	}

	return rows
}
