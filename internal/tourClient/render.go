package tourClient

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"touristplaces/pkg/types"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Width(28)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	DocStyle = lipgloss.NewStyle().
			Margin(1, 2)
)

func card(label, value string, lines ...string) string {
	body := []string{LabelStyle.Render(label), ValueStyle.Render(value)}
	return CardStyle.Render(strings.Join(append(body, lines...), "\n"))
}

// row lays cards out horizontally, perRow at a time.
func row(cards []string, perRow int) string {
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// formatCount prints n with thousands separators.
func formatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + formatCount(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

func RenderCities(cities []types.CitySummary) string {
	cards := make([]string, len(cities))
	for i, c := range cities {
		cards[i] = card(c.City, formatCount(c.TotalVisitors)+" visitors", fmt.Sprintf("%d places", c.Places))
	}
	return DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render("Cities"), row(cards, 3)))
}

func RenderItinerary(it types.Itinerary) string {
	cards := make([]string, len(it.Days))
	for i, day := range it.Days {
		var lines []string
		for _, p := range day.Places {
			lines = append(lines, fmt.Sprintf("%s (%s)", p.Name, p.Category))
		}
		if len(lines) == 0 {
			lines = append(lines, "free day")
		}
		cards[i] = card(fmt.Sprintf("Day %d", day.Day), fmt.Sprintf("%d places", len(day.Places)), lines...)
	}
	title := TitleStyle.Render(fmt.Sprintf("%d-day itinerary: %s", len(it.Days), it.City))
	return DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, row(cards, 3)))
}

func RenderForecast(f types.Forecast) string {
	cards := make([]string, len(f.Predictions))
	for i, v := range f.Predictions {
		cards[i] = card(fmt.Sprintf("Month +%d", i+1), formatCount(int(v+0.5)))
	}
	title := TitleStyle.Render(fmt.Sprintf("Visitor forecast: %s", f.City))
	fit := LabelStyle.Render(fmt.Sprintf("visitors = %.1f + %.1f * month, %d observations", f.Intercept, f.Slope, len(f.History)))
	return DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, fit, row(cards, 3)))
}

func RenderComparison(cmp types.Comparison) string {
	weather := make(map[string]types.WeatherSummary, len(cmp.Weather))
	for _, w := range cmp.Weather {
		weather[w.City] = w
	}
	cards := make([]string, len(cmp.Totals))
	for i, t := range cmp.Totals {
		w := weather[t.City]
		cards[i] = card(t.City, formatCount(t.TotalVisitors)+" visitors",
			fmt.Sprintf("%d places", t.Places),
			fmt.Sprintf("%s °C, %.0f mm rain", w.Temperature, w.Rainfall),
			"best: "+w.BestTimeToVisit)
	}
	return DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render("City comparison"), row(cards, 3)))
}
