// Package charts renders the dashboard figures as PNG images with gonum/plot.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"touristplaces/pkg/types"
)

var ErrNoData = errors.New("nothing to plot")

var (
	historicalColor = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	predictedColor  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	barColor        = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	thresholdColor  = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	rangeColor      = color.RGBA{R: 190, G: 190, B: 190, A: 255}
)

// Chart is a plot ready to be encoded.
type Chart struct {
	plot   *plot.Plot
	width  vg.Length
	height vg.Length
}

// WriteTo encodes the chart as PNG.
func (c *Chart) WriteTo(w io.Writer) (int64, error) {
	wt, err := c.plot.WriterTo(c.width, c.height, "png")
	if err != nil {
		return 0, err
	}
	return wt.WriteTo(w)
}

func newChart(title, xLabel, yLabel string) *Chart {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return &Chart{plot: p, width: 10 * vg.Inch, height: 6 * vg.Inch}
}

// VisitorTrend draws the fitted history followed by the dashed forecast.
func VisitorTrend(f types.Forecast) (*Chart, error) {
	if len(f.History) == 0 {
		return nil, ErrNoData
	}
	c := newChart(fmt.Sprintf("Visitor Trend and Prediction: %s", f.City), "Months", "Visitors")
	p := c.plot

	history := make(plotter.XYs, len(f.History))
	for i, v := range f.History {
		history[i] = plotter.XY{X: float64(i), Y: v}
	}
	line, err := plotter.NewLine(history)
	if err != nil {
		return nil, err
	}
	line.Color = historicalColor
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("Historical", line)

	if len(f.Predictions) > 0 {
		// start the forecast at the last observation so the two lines join
		predicted := make(plotter.XYs, 0, len(f.Predictions)+1)
		last := len(f.History) - 1
		predicted = append(predicted, plotter.XY{X: float64(last), Y: f.History[last]})
		for i, v := range f.Predictions {
			predicted = append(predicted, plotter.XY{X: float64(len(f.History) + i), Y: v})
		}
		dashed, err := plotter.NewLine(predicted)
		if err != nil {
			return nil, err
		}
		dashed.Color = predictedColor
		dashed.Width = vg.Points(2)
		dashed.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(dashed)
		p.Legend.Add("Predicted", dashed)
	}
	p.Legend.Top = true
	return c, nil
}

func barChart(title, xLabel, yLabel string, labels []string, values plotter.Values) (*Chart, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	c := newChart(title, xLabel, yLabel)
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	c.plot.Add(bars)
	c.plot.NominalX(labels...)
	c.plot.Y.Min = 0
	if len(labels) > 6 {
		c.plot.X.Tick.Label.Rotation = math.Pi / 4
		c.plot.X.Tick.Label.XAlign = draw.XRight
	}
	return c, nil
}

// TopPlaces draws monthly visitors per place.
func TopPlaces(places []types.Place) (*Chart, error) {
	labels := make([]string, len(places))
	values := make(plotter.Values, len(places))
	for i, p := range places {
		labels[i] = p.Name
		values[i] = float64(p.MonthlyVisitors)
	}
	return barChart("Top Busiest Places", "Place", "Monthly Visitors", labels, values)
}

// Distribution draws one bar per label. It serves both the category and the
// type breakdown.
func Distribution(title string, counts []types.CategoryCount) (*Chart, error) {
	labels := make([]string, len(counts))
	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		labels[i] = fmt.Sprintf("%s (%.0f%%)", c.Label, c.Share)
		values[i] = float64(c.Count)
	}
	return barChart(title, "", "Count", labels, values)
}

// CityTotals draws the total monthly visitors of each compared city.
func CityTotals(totals []types.CitySummary) (*Chart, error) {
	labels := make([]string, len(totals))
	values := make(plotter.Values, len(totals))
	for i, t := range totals {
		labels[i] = t.City
		values[i] = float64(t.TotalVisitors)
	}
	return barChart("Total Monthly Visitors by City", "City", "Monthly Visitors", labels, values)
}

// PlaceMap scatters places by longitude and latitude, one colour per category,
// with the glyph size following the visitor count.
func PlaceMap(places []types.Place) (*Chart, error) {
	if len(places) == 0 {
		return nil, ErrNoData
	}
	c := newChart("Place Distribution Map", "Longitude", "Latitude")
	p := c.plot

	maxVisitors := 0
	var order []string
	byCategory := make(map[string][]types.Place)
	for _, pl := range places {
		if _, ok := byCategory[pl.Category]; !ok {
			order = append(order, pl.Category)
		}
		byCategory[pl.Category] = append(byCategory[pl.Category], pl)
		maxVisitors = max(maxVisitors, pl.MonthlyVisitors)
	}

	for i, category := range order {
		group := byCategory[category]
		points := make(plotter.XYs, len(group))
		for j, pl := range group {
			points[j] = plotter.XY{X: pl.Location.Lon, Y: pl.Location.Lat}
		}
		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = plotutil.Color(i)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyleFunc = func(k int) draw.GlyphStyle {
			style := scatter.GlyphStyle
			style.Radius = glyphRadius(group[k].MonthlyVisitors, maxVisitors)
			return style
		}
		p.Add(scatter)
		p.Legend.Add(category, scatter)
	}
	p.Legend.Top = true
	return c, nil
}

func glyphRadius(visitors, maxVisitors int) vg.Length {
	if maxVisitors <= 0 {
		return vg.Points(4)
	}
	return vg.Points(4 + 10*float64(visitors)/float64(maxVisitors))
}

// TemperatureGauge draws the temperature range as a band with the average
// marked by a threshold line.
func TemperatureGauge(w types.WeatherSummary) (*Chart, error) {
	c := newChart(fmt.Sprintf("Average Temperature (°C): %s", w.City), "°C", "")
	c.height = 3 * vg.Inch
	p := c.plot
	p.HideY()

	lo, hi, avg := float64(w.Temperature.Min), float64(w.Temperature.Max), w.AverageTemperature

	band, err := plotter.NewLine(plotter.XYs{{X: lo, Y: 0}, {X: hi, Y: 0}})
	if err != nil {
		return nil, err
	}
	band.Color = rangeColor
	band.Width = vg.Points(30)
	p.Add(band)

	fill, err := plotter.NewLine(plotter.XYs{{X: lo, Y: 0}, {X: avg, Y: 0}})
	if err != nil {
		return nil, err
	}
	fill.Color = historicalColor
	fill.Width = vg.Points(12)
	p.Add(fill)

	threshold, err := plotter.NewLine(plotter.XYs{{X: avg, Y: -1}, {X: avg, Y: 1}})
	if err != nil {
		return nil, err
	}
	threshold.Color = thresholdColor
	threshold.Width = vg.Points(4)
	p.Add(threshold)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: avg, Y: 1.2}},
		Labels: []string{fmt.Sprintf("%.1f", avg)},
	})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	p.X.Min, p.X.Max = lo, hi
	if lo == hi {
		p.X.Min, p.X.Max = lo-1, hi+1
	}
	p.Y.Min, p.Y.Max = -2, 2
	return c, nil
}
