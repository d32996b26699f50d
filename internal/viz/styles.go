package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/neomatrix/internal/rgb"
)

var (
	matrixStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			Padding(0, 2).
			Width(44)
	graphStyle = lipgloss.NewStyle().Padding(1, 0)
	labelStyle = lipgloss.NewStyle().Width(12)
)

const (
	ledOn  = "●"
	ledOff = "·"
)

// RenderMatrix draws one dot per LED, two columns wide so cells come out
// roughly square.
func RenderMatrix(grid [][]rgb.Color, theme Theme) string {
	off := lipgloss.NewStyle().Foreground(theme.Off).Render(ledOff)
	var b strings.Builder
	for _, row := range grid {
		for _, c := range row {
			if c.IsBlack() {
				b.WriteString(off)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(ledOn))
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Sparkline maps values onto block characters, oldest first, keeping the
// last width values.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	chars := []rune("▁▂▃▄▅▆▇█")
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return b.String()
}

// paramBar shows value relative to twice its starting value.
func paramBar(value, initial float64, width int) string {
	ratio := 0.0
	if initial != 0 {
		ratio = value / (2 * initial)
	}
	ratio = max(0, min(ratio, 1))
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func label(name, value string, theme Theme) string {
	return labelStyle.Foreground(theme.Muted).Render(name) +
		lipgloss.NewStyle().Foreground(theme.Text).Render(value) + "\n"
}

func fmtFloat(v float64) string { return fmt.Sprintf("%.3f", v) }
