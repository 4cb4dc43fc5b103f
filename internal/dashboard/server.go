package dashboard

import (
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"yt-growth-tracker/internal/domain"
	"yt-growth-tracker/internal/export"
)

// StartServer serves comparison charts rendered from the exported CSV.
// The file is re-read per request so a fresh run shows up on reload.
func StartServer(dataFile string, port string) error {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		rows, err := export.ReadCSV(dataFile)
		if err != nil {
			http.Error(w, fmt.Sprintf("no comparison data yet: %v", err), http.StatusServiceUnavailable)
			return
		}

		var ok []domain.ComparisonRow
		for _, row := range rows {
			if !row.Failed() {
				ok = append(ok, row)
			}
		}

		// 1. Subscribers per channel
		subBar := charts.NewBar()
		subBar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Subscribers"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)

		var names []string
		var subs []opts.BarData
		for _, row := range ok {
			names = append(names, row.Snapshot.Title)
			subs = append(subs, opts.BarData{Value: row.Snapshot.Subscribers})
		}
		subBar.SetXAxis(names).AddSeries("Subscribers", subs)

		// 2. Engagement rate per channel
		engBar := charts.NewBar()
		engBar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Engagement Rate"}))

		var eng []opts.BarData
		for _, row := range ok {
			eng = append(eng, opts.BarData{Value: row.Metrics.EngagementRate})
		}
		engBar.SetXAxis(names).AddSeries("Engagement", eng)

		// 3. Total view share
		pie := charts.NewPie()
		pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Total View Share"}))

		var pieItems []opts.PieData
		for _, row := range ok {
			pieItems = append(pieItems, opts.PieData{Name: row.Snapshot.Title, Value: row.Snapshot.TotalViews})
		}
		pie.AddSeries("Views", pieItems)

		subBar.Render(w)
		engBar.Render(w)
		pie.Render(w)
	})

	return http.ListenAndServe(":"+port, nil)
}
