package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/qrnoize/pkg/config"
	"github.com/matzehuels/qrnoize/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for picker and table headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight for stack names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleDim for paths and counts that are not the point of a line.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue for values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleNumber for layer and image counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleSuccess for chosen items.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	// StyleWarning for config and input warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	styleLineNumber  = lipgloss.NewStyle().Foreground(colorGray).Width(5).Align(lipgloss.Right)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	// unnamedStack labels blocks flushed before any name line.
	unnamedStack = "(unnamed)"
)

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Domain output
// =============================================================================

// stackLabel names a stack for display.
func stackLabel(name string) string {
	if name == "" {
		return unnamedStack
	}
	return name
}

// formatWarning renders a config warning as "line │ text  reason".
func formatWarning(w config.Warning) string {
	return styleLineNumber.Render(fmt.Sprint(w.Line)) + " " + StyleDim.Render("│") + " " +
		StyleWarning.Render(w.Text) + "  " + StyleDim.Render(w.Reason)
}

func printWarnings(warnings []config.Warning) {
	if len(warnings) == 0 {
		return
	}
	printWarning("%d config line(s) skipped", len(warnings))
	for _, w := range warnings {
		fmt.Println(formatWarning(w))
	}
}

// formatFlush summarizes one flushed stack.
func formatFlush(f pipeline.FlushResult) string {
	parts := []string{
		StyleNumber.Render(fmt.Sprint(len(f.Written))) + " images",
		StyleNumber.Render(fmt.Sprint(f.Layers)) + " layers",
	}
	if n := len(f.Failed); n > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d unreadable", n)))
	}
	return styleKey.Render(StyleHighlight.Render(stackLabel(f.Stack))) + " " + strings.Join(parts, StyleDim.Render(" · "))
}

func printRunSummary(res *pipeline.Result) {
	for _, f := range res.Flushes {
		fmt.Println(formatFlush(f))
		for _, p := range f.Failed {
			printDetail("could not read %s", p)
		}
	}
	if len(res.Ignored) > 0 {
		printDetail("not selected: %s", strings.Join(res.Ignored, ", "))
	}
	printWarnings(res.Warnings)
	printSuccess("Wrote %d images in %s", res.Images(), res.Duration.Round(time.Millisecond))
}
