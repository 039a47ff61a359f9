package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal colours. The accent matches the muted saturation and lightness
// of the block palette so CLI output and rendered tilings feel related.
var (
	colorAccent = lipgloss.Color("73")
	colorGreen  = lipgloss.Color("71")
	colorYellow = lipgloss.Color("179")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Exported styles are shared with the live view and the run table.
var (
	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorAccent)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// statusMark is the leading glyph of a one-line status message.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = statusMark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = statusMark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = statusMark{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markInfo    = statusMark{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (m statusMark) println(msg string) {
	fmt.Println(m.style.Render(m.glyph) + " " + msg)
}

func printSuccess(format string, args ...any) {
	markSuccess.println(fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	markError.println(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	markWarning.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	markInfo.println(fmt.Sprintf(format, args...))
}

// printDetail prints a dimmed, indented line under a status message.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints a one-line tiling summary such as
// "412 blocks · 100.0% covered · exhausted · fresh".
func printStats(rects int, coverage float64, reason string, cached bool) {
	parts := []string{
		fmt.Sprintf("%d blocks", rects),
		fmt.Sprintf("%.1f%% covered", 100*coverage),
	}
	if reason != "" {
		parts = append(parts, reason)
	}
	printStatLine(parts, cached)
}

func printGraphStats(nodes, edges int, cached bool) {
	printStatLine([]string{fmt.Sprintf("%d nodes", nodes), fmt.Sprintf("%d edges", edges)}, cached)
}

func printStatLine(parts []string, cached bool) {
	rendered := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		rendered = append(rendered, StyleDim.Render(p))
	}
	if cached {
		rendered = append(rendered, StyleSuccess.Render("cached"))
	} else {
		rendered = append(rendered, lipgloss.NewStyle().Foreground(colorGray).Render("fresh"))
	}
	fmt.Println("  " + strings.Join(rendered, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
