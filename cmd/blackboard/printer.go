package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/oshokin/blackboard/blackboard/store"
)

//nolint:gochecknoglobals // color palette.
var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// success prints a message in green with a checkmark prefix.
func success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ "+format+"\n", a...)
}

// warning prints a message in yellow.
func warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "⚠️  "+format+"\n", a...)
}

// failure prints a message in bold red, usually to the command's stderr.
func failure(w io.Writer, format string, a ...any) {
	red.Fprintf(w, "✗ "+format+"\n", a...)
}

// heading prints a section title in cyan.
func heading(w io.Writer, title string) {
	cyan.Fprintf(w, "%s\n", title)
}

// formatValue renders an entry value for tables.
func formatValue(value any) string {
	switch v := value.(type) {
	case int32:
		return humanize.Comma(int64(v))
	case float32:
		return humanize.FtoaWithDigits(float64(v), 4)
	case store.Vec3:
		return fmt.Sprintf("(%s, %s, %s)",
			humanize.FtoaWithDigits(float64(v[0]), 4),
			humanize.FtoaWithDigits(float64(v[1]), 4),
			humanize.FtoaWithDigits(float64(v[2]), 4))
	default:
		return fmt.Sprint(v)
	}
}

// printEntries prints one kind's table as aligned key/value lines.
func printEntries(w io.Writer, kind store.Kind, entries []store.Entry) {
	heading(w, fmt.Sprintf("%s (%d)", kind, len(entries)))

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}

	for _, e := range entries {
		fmt.Fprintf(w, "  %-*s  %s\n", width, e.Key, formatValue(e.Value))
	}
}
