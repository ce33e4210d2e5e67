package progress

import (
	"fmt"

	"github.com/fatih/color"
)

// resultLine formats one channel result
func resultLine(mark, channel, detail string) string {
	if detail == "" {
		return fmt.Sprintf("%s %s", mark, channel)
	}
	return fmt.Sprintf("%s %s: %s", mark, channel, detail)
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	if !supportsColor {
		return symbols.Checkmark
	}
	c := color.New(color.FgGreen)
	c.EnableColor()
	return c.Sprint(symbols.Checkmark)
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	if !supportsColor {
		return symbols.Failure
	}
	c := color.New(color.FgRed)
	c.EnableColor()
	return c.Sprint(symbols.Failure)
}
