package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/panforge/panlayout/pkg/notation"
)

// stdout receives all human-readable command output. Logs and the spinner
// go to stderr.
var stdout io.Writer = os.Stdout

// Palette. The role colours match the light SVG theme so a table row and
// the drawn note read as the same thing.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	colorDing   = lipgloss.Color("173")
	colorTonal  = lipgloss.Color("110")
	colorMutant = lipgloss.Color("139")
	colorBottom = lipgloss.Color("108")
)

// Exported styles shared by every command.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	roleStyles = map[notation.Role]lipgloss.Style{
		notation.Ding:   lipgloss.NewStyle().Foreground(colorDing).Bold(true),
		notation.Tonal:  lipgloss.NewStyle().Foreground(colorTonal),
		notation.Mutant: lipgloss.NewStyle().Foreground(colorMutant),
		notation.Bottom: lipgloss.NewStyle().Foreground(colorBottom),
	}
)

// status is one leading icon per kind of message.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	statusInfo    = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) print(msg string) {
	fmt.Fprintln(stdout, s.style.Render(s.icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	statusSuccess.print(fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	statusError.print(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	statusWarning.print(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	statusInfo.print(fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status message.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// printStats prints a one-line summary of a parse:
//
//	9 notes · 1 skipped · flats · cached
func printStats(noteCount, skipCount int, flats, cached bool) {
	parts := []string{fmt.Sprintf("%d notes", noteCount)}
	if skipCount > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipCount))
	}
	if flats {
		parts = append(parts, "flats")
	} else {
		parts = append(parts, "sharps")
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	if cached {
		parts = append(parts, statusSuccess.style.Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGray).Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// roleLabel renders a note role in its diagram colour.
func roleLabel(r notation.Role) string {
	if s, ok := roleStyles[r]; ok {
		return s.Render(r.String())
	}
	return r.String()
}

func printTable(headers []string, rows [][]string) {
	fmt.Fprintln(stdout, newTable(headers, rows).Render())
}

// newTable builds a rounded table with a bold header row.
func newTable(headers []string, rows [][]string) *table.Table {
	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return header
			}
			return cell
		})
}
