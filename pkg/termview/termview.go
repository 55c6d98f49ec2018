// Package termview renders advisor responses for a terminal.
package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	factStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	footerStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle    = lipgloss.NewStyle().
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("6")).
			PaddingLeft(1)
)

// maxChartRows bounds how many samples of a series are printed.
const maxChartRows = 8

// Render formats a response with its attachment. Width <= 0 disables wrapping.
func Render(resp *model.Response, width int) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(resp.Title))
	b.WriteString("\n\n")
	body := lipgloss.NewStyle()
	if width > 4 {
		body = body.Width(width - 4)
	}
	b.WriteString(body.Render(resp.Body))
	b.WriteString("\n")
	if resp.KeyFact != "" {
		b.WriteString("\n")
		b.WriteString(factStyle.Render("▸ " + resp.KeyFact))
		b.WriteString("\n")
	}

	if att := renderAttachment(resp.Attachment); att != "" {
		b.WriteString("\n")
		b.WriteString(att)
	}

	if resp.GuidanceFooter != "" {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render(resp.GuidanceFooter))
	}

	return boxStyle.Render(b.String())
}

func renderAttachment(a model.Attachment) string {
	switch att := a.(type) {
	case model.TableAttachment:
		return RenderTable(att)
	case model.ChartAttachment:
		return RenderChart(att)
	default:
		return ""
	}
}

// RenderTable lays the rows out in padded columns.
func RenderTable(t model.TableAttachment) string {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(headerStyle.Render(joinRow(t.Columns, widths)))
	b.WriteString("\n")
	for _, row := range t.Rows {
		b.WriteString(joinRow(row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

func joinRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// RenderChart prints a sampled listing of every series.
func RenderChart(c model.ChartAttachment) string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(headerStyle.Render(c.Title))
		b.WriteString("\n")
	}
	if c.XLabel != "" || c.YLabel != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s vs %s", c.YLabel, c.XLabel)))
		b.WriteString("\n")
	}
	for _, s := range c.Series {
		b.WriteString(s.Name)
		b.WriteString(":")
		for _, p := range sample(s.Points, maxChartRows) {
			label := p.Label
			if label == "" {
				label = fmt.Sprintf("%g", p.X)
			}
			fmt.Fprintf(&b, " %s=%.1f", label, p.Y)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// sample picks at most n evenly spaced points, always keeping the last one.
func sample(points []model.Point, n int) []model.Point {
	if n <= 0 || len(points) <= n {
		return points
	}
	out := make([]model.Point, 0, n)
	step := float64(len(points)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out = append(out, points[int(float64(i)*step+0.5)])
	}
	return out
}
