package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
// The zero value doubles as "empty" for grid cells.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorHex = map[Color]string{
	ColorRed:           "#f00000",
	ColorGreen:         "#00f000",
	ColorYellow:        "#f0f000",
	ColorBlue:          "#0000f0",
	ColorMagenta:       "#a000f0",
	ColorCyan:          "#00f0f0",
	ColorWhite:         "#e0e0e0",
	ColorBrightRed:     "#ff5555",
	ColorBrightGreen:   "#4ade80",
	ColorBrightYellow:  "#ffff55",
	ColorBrightBlue:    "#5555ff",
	ColorBrightMagenta: "#ff55ff",
	ColorBrightCyan:    "#55ffff",
	ColorBrightWhite:   "#ffffff",
	ColorOrange:        "#f0a000",
	ColorGray:          "#808080",
}

// Hex returns a CSS hex color for browser rendering.
// ColorDefault yields an empty string so callers fall back to their own default.
func (c Color) Hex() string {
	return colorHex[c]
}
