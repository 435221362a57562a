package ui

import "strings"

// columnWidths distributes the terminal width over the table's five columns.
// ID and the two dates get fixed widths; name and description share the rest.
func columnWidths(total int) [5]int {
	const (
		idW   = 12
		dateW = 12
		gap   = 2
	)
	rest := total - idW - 2*dateW - 4*gap
	if rest < 20 {
		rest = 20
	}
	nameW := rest / 3
	descW := rest - nameW
	return [5]int{idW, nameW, descW, dateW, dateW}
}

// tableRow lays the cells out in fixed-width columns, truncating overflow.
func tableRow(widths [5]int, cells ...string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(pad(cell, widths[i]))
	}
	return b.String()
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	s = truncateRight(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

// truncateRight cuts s to at most width runes, ending in an ellipsis when it
// had to cut.
func truncateRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
