package exportservice

import (
	"bytes"
	"fmt"

	exportdomain "github.com/Black-And-White-Club/belote-bot/app/modules/export/domain"
	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colours of the score chart.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	TeamA      drawing.Color
	TeamB      drawing.Color
	Threshold  drawing.Color
}

// DefaultPalette matches the workbook header colours.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	TextColor:  drawing.ColorFromHex("333333"),
	TeamA:      drawing.ColorFromHex(teamAHeaderFill),
	TeamB:      drawing.ColorFromHex(teamBHeaderFill),
	Threshold:  drawing.ColorFromHex("999999"),
}

// BuildChart renders the running totals of both teams against the
// victory threshold as a PNG.
func BuildChart(snapshot *sessionservice.SessionSnapshot, palette ChartPalette) ([]byte, error) {
	if snapshot == nil {
		return nil, exportdomain.ErrNothingToExport
	}

	rounds := make([]scoringdomain.RoundRecord, len(snapshot.Rounds))
	for i, view := range snapshot.Rounds {
		rounds[i] = view.RoundRecord
	}
	xs, totalsA, totalsB := exportdomain.Series(rounds)

	lastX := xs[len(xs)-1]
	if lastX < 1 {
		lastX = 1
	}
	threshold := float64(snapshot.VictoryThreshold)

	teamSeries := func(name string, ys []float64, color drawing.Color) chart.ContinuousSeries {
		return chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotWidth:    4,
				DotColor:    color,
			},
		}
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s vs %s", snapshot.TeamA.Name, snapshot.TeamB.Name),
		Width:  800,
		Height: 400,
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Mène",
			ValueFormatter: roundFormatter,
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: "Points",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		Series: []chart.Series{
			teamSeries(snapshot.TeamA.Name, totalsA, palette.TeamA),
			teamSeries(snapshot.TeamB.Name, totalsB, palette.TeamB),
			chart.ContinuousSeries{
				Name:    "Objectif",
				XValues: []float64{0, lastX},
				YValues: []float64{threshold, threshold},
				Style: chart.Style{
					StrokeColor:     palette.Threshold,
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func roundFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}
