package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorGreen
	ColorCyan
	ColorBrightWhite
	ColorBrightYellow
	ColorBrightRed
	ColorBrightGreen
	ColorBrightCyan
)

// tilePalette is indexed by log2(value)-1, so 2 → [0], 4 → [1], ...
var tilePalette = [...]Color{
	ColorWhite,        // 2
	ColorBrightWhite,  // 4
	ColorYellow,       // 8
	ColorOrange,       // 16
	ColorRed,          // 32
	ColorBrightRed,    // 64
	ColorBrightYellow, // 128
	ColorBrightYellow, // 256
	ColorGreen,        // 512
	ColorBrightGreen,  // 1024
	ColorBrightCyan,   // 2048
}

// TileColor returns the color used for a tile of the given value.
// Values past the palette share the highest tier color.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	idx := -1
	for v := value; v > 1; v >>= 1 {
		idx++
	}
	if idx < 0 {
		return ColorDefault
	}
	if idx >= len(tilePalette) {
		return ColorMagenta
	}
	return tilePalette[idx]
}
