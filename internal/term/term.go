// Package term renders an agenda for the terminal.
package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"agendacal/internal/agenda"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Padding(0, 1)

	dateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("117")).
			Width(14)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(15)

	eventStyle = lipgloss.NewStyle().
			Width(28)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	noEventsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(0, 1)

	badgeColors = map[string]lipgloss.Color{
		"badge-success":   lipgloss.Color("120"),
		"badge-warning":   lipgloss.Color("229"),
		"badge-secondary": lipgloss.Color("245"),
		"badge-info":      lipgloss.Color("117"),
		"badge-dark":      lipgloss.Color("240"),
	}
)

// Render lays a out as a table: the date column once per day group, then
// time, title, customer/location and status. Days without events are
// skipped.
func Render(a agenda.Agenda) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Title))
	b.WriteString("\n\n")

	if a.Empty {
		b.WriteString(noEventsStyle.Render(a.NoEvents))
		b.WriteString("\n")
		return b.String()
	}

	for _, g := range a.Days {
		for _, r := range g.Rows {
			date := ""
			if r.DateLabel != nil {
				date = *r.DateLabel
			}
			row := lipgloss.JoinHorizontal(lipgloss.Top,
				dateStyle.Render(date),
				timeStyle.Render(TimeCell(r.Label)),
				eventStyle.Render(r.Title),
				detailStyle.Render(details(r)),
				" ",
				badge(r),
			)
			b.WriteString(row)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// TimeCell is the time label with arrows marking continuation into the
// previous or next day.
func TimeCell(l agenda.Label) string {
	s := l.TimeLabel
	if l.ContinuesBefore {
		s = "« " + s
	}
	if l.ContinuesAfter {
		s += " »"
	}
	return strings.TrimSpace(s)
}

func details(r agenda.Row) string {
	var parts []string
	for _, p := range []string{r.Customer, r.Phone, r.Location} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

func badge(r agenda.Row) string {
	c, ok := badgeColors[r.StatusClass]
	if !ok {
		c = lipgloss.Color("245")
	}
	return lipgloss.NewStyle().Foreground(c).Render("[" + r.Status + "]")
}
