package arena

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

// RenderChart writes an HTML page charting the batch's outcomes, plus the
// modeled participant's beliefs when there is one
func RenderChart(w io.Writer, result *Result) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s vs %s", result.X, result.O)
	page.AddCharts(outcomeChart(result))
	if result.Beliefs != nil {
		page.AddCharts(beliefsChart(result))
	}
	return page.Render(w)
}

func outcomeChart(result *Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s (X) vs %s (O)", result.X, result.O),
			Subtitle: fmt.Sprintf("%d games, %.2f moves on average", result.Games, result.AverageLength),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	bar.SetXAxis([]string{"X wins", "O wins", "Draws"}).
		AddSeries("games", []opts.BarData{
			{Value: result.XWins},
			{Value: result.OWins},
			{Value: result.Draws},
		})
	return bar
}

func beliefsChart(result *Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Opponent model",
			Subtitle: fmt.Sprintf("mean beliefs held by %s", result.ModeledPlayer),
		}),
	)

	names := make([]string, 0, model.ArchetypeCount)
	items := make([]opts.BarData, 0, model.ArchetypeCount)
	for _, a := range model.Archetypes {
		names = append(names, a.String())
		items = append(items, opts.BarData{Value: result.Beliefs.Probability(a)})
	}
	bar.SetXAxis(names).AddSeries("probability", items)
	return bar
}
