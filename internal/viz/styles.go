package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// GradientText colors each rune of text along a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from, err := colorful.Hex(string(start))
	if err != nil {
		from = colorful.Color{R: 1, G: 1, B: 1}
	}
	to, err := colorful.Hex(string(end))
	if err != nil {
		to = from
	}

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		color := lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(c)))
	}

	return result.String()
}

// ProgressBar renders a fixed width bar filled to percent in [0, 1].
func ProgressBar(percent float64, width int, color lipgloss.Color) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// Separator draws a muted rule.
func Separator(width int, color lipgloss.Color) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return lipgloss.NewStyle().Foreground(color).Render(left + " ◆ " + right)
}
