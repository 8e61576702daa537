package internal

import (
	"os"

	"github.com/epitools/episcope/schema"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Alert label bands over the exceedance probability.
const (
	highValue     = "High"
	elevatedValue = "Elevated"
	watchValue    = "Watch"
	quietValue    = "Quiet"
	noDataValue   = "-"
)

var (
	highColor     = color.New(color.FgRed, color.Bold)    // High: Red and Bold
	elevatedColor = color.New(color.FgYellow, color.Bold) // Elevated: Yellow and Bold
	watchColor    = color.New(color.FgGreen)              // Watch: Green
	quietColor    = color.New(color.FgHiBlack)            // Quiet: Dark Grey/HiBlack
)

// getPlainLabel returns a plain text alert label for a bucket based on its
// exceedance probability. This is the core logic used for CSV, JSON, and
// table printing.
// - High (>= 0.8)
// - Elevated (>= 0.5)
// - Watch (>= 0.2)
// - Quiet (< 0.2)
func getPlainLabel(p schema.Float) string {
	if !p.Valid {
		return noDataValue
	}
	switch {
	case p.Value >= 0.8:
		return highValue
	case p.Value >= 0.5:
		return elevatedValue
	case p.Value >= 0.2:
		return watchValue
	default:
		return quietValue
	}
}

// getColorLabel returns a colored alert label for console output (table).
func getColorLabel(p schema.Float) string {
	text := getPlainLabel(p)

	switch text {
	case highValue:
		return highColor.Sprint(text)
	case elevatedValue:
		return elevatedColor.Sprint(text)
	case watchValue:
		return watchColor.Sprint(text)
	case quietValue:
		return quietColor.Sprint(text)
	default: // "-"
		return text
	}
}

// compactTableWidth is the terminal width below which the signal table
// drops its detail columns.
const compactTableWidth = 100

// useCompactTable decides whether the signal table should show the compact
// column set, based on an explicit width override or the detected terminal.
func useCompactTable(cfg *Config) bool {
	termWidth := cfg.Width

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	return termWidth < compactTableWidth
}
