package report

import (
	"strconv"

	"github.com/pkg/errors"
	charts "github.com/vicanso/go-charts/v2"

	"stock_potential/pkg/core/display"
	"stock_potential/pkg/core/equity"
)

// ChartFormat is the image encoding of a projection chart.
type ChartFormat string

const (
	ChartPNG ChartFormat = "png"
	ChartSVG ChartFormat = "svg"
)

// ContentType is the MIME type for the format.
func (f ChartFormat) ContentType() string {
	if f == ChartSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// ParseChartFormat defaults to PNG for an empty string.
func ParseChartFormat(s string) (ChartFormat, error) {
	switch s {
	case "", "png":
		return ChartPNG, nil
	case "svg":
		return ChartSVG, nil
	}
	return "", errors.Errorf("unsupported chart format %q", s)
}

// Chart draws stake value (left axis) and company valuation (right axis) per round.
func Chart(sched equity.Schedule, format ChartFormat) ([]byte, error) {
	if len(sched.Rounds) == 0 {
		return nil, errors.New("chart: empty schedule")
	}

	labels := make([]string, 0, len(sched.Rounds))
	stake := make([]float64, 0, len(sched.Rounds))
	valuation := make([]float64, 0, len(sched.Rounds))
	for _, r := range sched.Rounds {
		label := strconv.Itoa(int(r.Round))
		if r.Target {
			label = display.Ratio(r.Round)
		}
		labels = append(labels, label)
		stake = append(stake, r.StakeValue)
		valuation = append(valuation, r.Valuation)
	}

	names := []string{"Stake value", "Company valuation"}
	seriesList := charts.NewSeriesListDataFromValues([][]float64{stake, valuation}, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
		seriesList[i].AxisIndex = i
	}

	opts := []charts.OptionFunc{
		charts.TitleTextOptionFunc("Stock potential by round", "target at "+display.Ratio(sched.NumberOfRaises)+" raises"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag()}),
		charts.YAxisOptionFunc(
			charts.YAxisOption{DivideCount: 5},
			charts.YAxisOption{DivideCount: 5, Position: charts.PositionRight},
		),
		charts.LegendOptionFunc(charts.LegendOption{Data: names, Top: charts.PositionBottom}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(900),
		charts.HeightOptionFunc(500),
	}
	if format == ChartSVG {
		opts = append(opts, charts.SVGTypeOption())
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "render chart")
	}
	return painter.Bytes()
}
