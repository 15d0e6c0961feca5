package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/pachinko-arcade/internal/core"
)

// palette holds the ANSI code for each core.Color; ColorDefault has none.
var palette = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightYellow: "11",
	core.ColorBrightWhite:  "15",
	core.ColorOrange:       "208",
	core.ColorGold:         "220",
	core.ColorBrown:        "130",
	core.ColorGray:         "245",
}

var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is emitted as spans of equal color, one style per span.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	var span strings.Builder
	for y := range rows {
		var row strings.Builder
		spanColor := core.ColorDefault
		flush := func() {
			if span.Len() > 0 {
				row.WriteString(styleFor(spanColor).Render(span.String()))
				span.Reset()
			}
		}
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != spanColor {
				flush()
				spanColor = cell.Color
			}
			span.WriteRune(cell.Rune)
		}
		flush()
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}
