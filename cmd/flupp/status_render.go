package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// outcome is the result reported for one file or import ID.
type outcome int

const (
	outcomeStored outcome = iota
	outcomeDuplicate
	outcomeRemoved
	outcomeMissing
	outcomeFailed
)

type outcomeStyle struct {
	tag    string
	colors text.Colors
}

var outcomeStyles = map[outcome]outcomeStyle{
	outcomeStored:    {tag: "OK", colors: text.Colors{text.FgGreen}},
	outcomeDuplicate: {tag: "SKIP", colors: text.Colors{text.FgYellow}},
	outcomeRemoved:   {tag: "OK", colors: text.Colors{text.FgGreen}},
	outcomeMissing:   {tag: "SKIP", colors: text.Colors{text.FgYellow}},
	outcomeFailed:    {tag: "ERROR", colors: text.Colors{text.FgRed, text.Bold}},
}

var headerColors = text.Colors{text.FgCyan, text.Bold}

// outcomeLabelWidth fits typical export names such as "Flugbuch_2023.flu".
const outcomeLabelWidth = 24

// renderOutcome formats one "  name:   [TAG] detail" line, colored when the
// output is a terminal.
func renderOutcome(label string, o outcome, detail string, colorize bool) string {
	style := outcomeStyles[o]
	line := fmt.Sprintf("  %-*s [%s]", outcomeLabelWidth, label+":", style.tag)
	if detail != "" {
		line += " " + detail
	}
	if colorize {
		return style.colors.Sprint(line)
	}
	return line
}

// renderSectionHeader underlines title so sections stand apart in long
// listings.
func renderSectionHeader(title string, colorize bool) []string {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("=", text.StringWidthWithoutEscSequences(title))
	if colorize {
		return []string{headerColors.Sprint(title), rule}
	}
	return []string{title, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
