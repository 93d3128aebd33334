package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	brand  = color.New(color.FgHiBlue, color.Bold)
	subtle = color.New(color.FgHiBlack)
	warn   = color.New(color.FgYellow)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

// table prints a simple aligned table.
func table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine, sepLine := "  ", "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	subtle.Println(headerLine)
	subtle.Println(sepLine)
	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println(line)
	}
}

func f32(v float32) string { return fmt.Sprintf("%.3f", v) }
