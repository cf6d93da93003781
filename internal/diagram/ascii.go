package diagram

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosteel/internal/section"
)

// DrawASCIIProfile renders the profile as filled character cells, cols
// wide. With rows <= 0 the height follows the section aspect ratio,
// taking a character cell as twice as tall as it is wide.
func DrawASCIIProfile(p *section.Profile, cols, rows int) string {
	var sb strings.Builder
	if p == nil || cols <= 0 {
		return ""
	}

	minX, minY, maxX, maxY := p.Bounds()
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return ""
	}
	if rows <= 0 {
		rows = int(float64(cols)*h/w/2 + 0.5)
		rows = max(1, min(rows, 2*cols))
	}

	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", cols)))
	for i := 0; i < rows; i++ {
		y := maxY - (float64(i)+0.5)*h/float64(rows)
		spans := p.SpansAt(y)

		sb.WriteString("  │")
		for j := 0; j < cols; j++ {
			x := minX + (float64(j)+0.5)*w/float64(cols)
			if inSpans(spans, x) {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("│\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", cols)))

	return sb.String()
}

func inSpans(spans [][2]float64, x float64) bool {
	for _, s := range spans {
		if x >= s[0] && x <= s[1] {
			return true
		}
	}
	return false
}

// DrawLegend lists the dimension and callout labels of a diagram.
func DrawLegend(d *Diagram) string {
	var sb strings.Builder
	sb.WriteString("  Dimensions:\n")
	for _, dim := range d.Dimensions {
		sb.WriteString(fmt.Sprintf("    %s\n", dim.Label))
	}
	for _, c := range d.Callouts {
		sb.WriteString(fmt.Sprintf("    %s\n", c.Label))
	}
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
