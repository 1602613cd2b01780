package colour

import (
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreviewWithText returns a colour block with centred text drawn in
// black or white, whichever contrasts with the background.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg uint8 = 255
	if c.Luminance() > 0.5 {
		fg = 0
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg, fg, fg, ansiSuffix)

	// Pad or truncate text to fit width.
	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bgColour + fgColour + displayText + ansiReset
}

// Luminance returns the WCAG relative luminance of the colour in [0, 1].
func (rgb RGB) Luminance() float64 {
	return 0.2126*linearise(rgb.R) + 0.7152*linearise(rgb.G) + 0.0722*linearise(rgb.B)
}

func linearise(v uint8) float64 {
	c := float64(v) / 255.0
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// SupportsANSIColours reports whether f is a terminal that should receive
// ANSI colour codes. NO_COLOR and TERM=dumb disable colour output.
func SupportsANSIColours(f *os.File) bool {
	if DisableColourOutput || f == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// DisableColourOutput turns off ANSI colour regardless of the terminal. The
// CLI sets it from --no-colour.
var DisableColourOutput = false
