// Package theme defines color themes for the finportal dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name string

	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Active tab
	SurfaceBright lipgloss.Color // Selected settings row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // Focused cards and dialogs

	TextDim     lipgloss.Color // Hints, axis ticks, empty bar cells
	TextMuted   lipgloss.Color // Labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Green       lipgloss.Color
	GreenBright lipgloss.Color // Healthy margin, success notices
	Orange      lipgloss.Color // Thin margin, warnings
	Red         lipgloss.Color // Loss, errors
	Blue        lipgloss.Color
	Yellow      lipgloss.Color
	Magenta     lipgloss.Color
	Cyan        lipgloss.Color

	// Series colours business units in charts, in choice-list order.
	Series []lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme, a warm paper-inspired dark palette.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    "#100F0F",
	Surface:       "#1C1B1A",
	SurfaceHover:  "#282726",
	SurfaceBright: "#343331",
	Border:        "#403E3C",
	BorderAccent:  "#3AA99F",
	TextDim:       "#575653",
	TextMuted:     "#878580",
	TextPrimary:   "#FFFCF0",
	Accent:        "#3AA99F",
	AccentBright:  "#5BC8BE",
	Green:         "#879A39",
	GreenBright:   "#A3B859",
	Orange:        "#DA702C",
	Red:           "#D14D41",
	Blue:          "#4385BE",
	Yellow:        "#D0A215",
	Magenta:       "#CE5D97",
	Cyan:          "#24837B",
	Series:        []lipgloss.Color{"#4385BE", "#879A39", "#DA702C", "#CE5D97", "#D0A215", "#24837B", "#8B7EC8", "#D14D41"},
}

// CatppuccinMocha is a soft pastel palette.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    "#1E1E2E",
	Surface:       "#313244",
	SurfaceHover:  "#45475A",
	SurfaceBright: "#585B70",
	Border:        "#585B70",
	BorderAccent:  "#89B4FA",
	TextDim:       "#6C7086",
	TextMuted:     "#A6ADC8",
	TextPrimary:   "#CDD6F4",
	Accent:        "#89B4FA",
	AccentBright:  "#B4D0FB",
	Green:         "#A6E3A1",
	GreenBright:   "#C6F6C1",
	Orange:        "#FAB387",
	Red:           "#F38BA8",
	Blue:          "#89B4FA",
	Yellow:        "#F9E2AF",
	Magenta:       "#F5C2E7",
	Cyan:          "#94E2D5",
	Series:        []lipgloss.Color{"#89B4FA", "#A6E3A1", "#FAB387", "#CBA6F7", "#F9E2AF", "#94E2D5", "#F5C2E7", "#EBA0AC"},
}

// TokyoNight is a cool blue and purple palette.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    "#1A1B26",
	Surface:       "#24283B",
	SurfaceHover:  "#343A52",
	SurfaceBright: "#414868",
	Border:        "#565F89",
	BorderAccent:  "#7AA2F7",
	TextDim:       "#565F89",
	TextMuted:     "#A9B1D6",
	TextPrimary:   "#C0CAF5",
	Accent:        "#7AA2F7",
	AccentBright:  "#A9C1FF",
	Green:         "#9ECE6A",
	GreenBright:   "#B9E87A",
	Orange:        "#FF9E64",
	Red:           "#F7768E",
	Blue:          "#7AA2F7",
	Yellow:        "#E0AF68",
	Magenta:       "#BB9AF7",
	Cyan:          "#7DCFFF",
	Series:        []lipgloss.Color{"#7AA2F7", "#9ECE6A", "#FF9E64", "#BB9AF7", "#E0AF68", "#7DCFFF", "#2AC3DE", "#F7768E"},
}

// Terminal uses the ANSI 16 colours only.
var Terminal = Theme{
	Name:          "terminal",
	Background:    "0",
	Surface:       "0",
	SurfaceHover:  "8",
	SurfaceBright: "8",
	Border:        "8",
	BorderAccent:  "6",
	TextDim:       "8",
	TextMuted:     "7",
	TextPrimary:   "15",
	Accent:        "6",
	AccentBright:  "14",
	Green:         "2",
	GreenBright:   "10",
	Orange:        "3",
	Red:           "1",
	Blue:          "4",
	Yellow:        "11",
	Magenta:       "5",
	Cyan:          "6",
	Series:        []lipgloss.Color{"12", "10", "3", "13", "11", "14", "5", "9"},
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// SeriesColor returns the palette colour for the i-th business unit.
func (t Theme) SeriesColor(i int) lipgloss.Color {
	if len(t.Series) == 0 {
		return t.Accent
	}
	if i < 0 {
		i = -i
	}
	return t.Series[i%len(t.Series)]
}

// MarginColor maps a profit margin in percent to a status colour.
func (t Theme) MarginColor(pct float64) lipgloss.Color {
	switch {
	case pct < 0:
		return t.Red
	case pct < 10:
		return t.Orange
	case pct < 25:
		return t.Yellow
	default:
		return t.GreenBright
	}
}
