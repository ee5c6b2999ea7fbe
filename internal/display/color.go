// Package display renders calendar output for the terminal.
//
// Styling goes through fatih/color. It respects the NO_COLOR environment
// variable (https://no-color.org/) and FORCE_COLOR, and disables color when
// stdout is not a terminal or when --json asks for plain output.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	boldStyle   = color.New(color.Bold)
	dimStyle    = color.New(color.Faint)
	greenStyle  = color.New(color.FgGreen)
	yellowStyle = color.New(color.FgYellow)
	cyanStyle   = color.New(color.FgCyan)
	grayStyle   = color.New(color.FgHiBlack)
	accentStyle = color.New(color.Bold, color.FgCyan)
	todayStyle  = color.New(color.Bold, color.ReverseVideo)
)

func init() {
	color.NoColor = !shouldEnable()
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return isTerminal(os.Stdout)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	color.NoColor = !b
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return !color.NoColor
}

// Output is where rendered output goes; color.Output translates escapes on
// Windows consoles.
func Output() io.Writer {
	return color.Output
}

// Bold returns text rendered in bold.
func Bold(text string) string { return boldStyle.Sprint(text) }

// Dim returns text rendered in dim/faint.
func Dim(text string) string { return dimStyle.Sprint(text) }

// Green returns text rendered in green.
func Green(text string) string { return greenStyle.Sprint(text) }

// Yellow returns text rendered in yellow.
func Yellow(text string) string { return yellowStyle.Sprint(text) }

// Cyan returns text rendered in cyan.
func Cyan(text string) string { return cyanStyle.Sprint(text) }

// Gray returns text rendered in gray (bright black).
func Gray(text string) string { return grayStyle.Sprint(text) }

// Accent returns text rendered in the accent color (cyan + bold).
func Accent(text string) string { return accentStyle.Sprint(text) }

// Today returns text rendered in reverse video for the current day.
func Today(text string) string { return todayStyle.Sprint(text) }

// Boldf formats and bolds a string.
func Boldf(format string, a ...interface{}) string {
	return Bold(fmt.Sprintf(format, a...))
}
