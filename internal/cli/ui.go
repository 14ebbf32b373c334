package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/stats"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Run Display
// =============================================================================

// runStatsLine joins the run's counters with a cache marker.
func runStatsLine(rn *run.Run, cached bool) string {
	parts := []string{fmt.Sprintf("%d placed", rn.Placed())}
	if res := rn.Result; res != nil {
		if n := len(res.Stats.SkippedSlots); n > 0 {
			parts = append(parts, fmt.Sprintf("%d skipped", n))
		}
		parts = append(parts, fmt.Sprintf("%d attempts", res.Stats.Attempts))
		if res.Stats.Terminated {
			parts = append(parts, "track ended early")
		}
	}
	parts = append(parts, cacheMarker(cached))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line
}

// printRunStats prints run counters on a single line.
func printRunStats(rn *run.Run, cached bool) {
	fmt.Println(runStatsLine(rn, cached))
}

// printCacheStatus prints whether output came from the cache.
func printCacheStatus(cached bool) {
	fmt.Println("  " + cacheMarker(cached))
}

func cacheMarker(cached bool) string {
	if cached {
		return styleCached.Render(iconCached)
	}
	return styleComputed.Render(iconFresh)
}

// printSummary prints the statistical summary of a run.
func printSummary(rn *run.Run, s stats.Summary) {
	fmt.Println(StyleTitle.Render("Run " + rn.ID))
	printKeyValue("seed", fmt.Sprint(rn.Seed))
	printKeyValue("placed", fmt.Sprintf("%d of %d", s.Placed, rn.Config.ElementCount))
	printKeyValue("skipped", fmt.Sprint(s.Skipped))
	printKeyValue("rejected", fmt.Sprintf("%.1f%% of %d attempts", 100*s.Rejection, s.Attempts))
	if s.Gaps.N > 0 {
		printKeyValue("spacing", fmt.Sprintf("mean %.2f  sd %.2f  min %.2f  max %.2f",
			s.Gaps.Mean, s.Gaps.StdDev, s.Gaps.Min, s.Gaps.Max))
	}
	if s.LaneCounts != nil {
		counts := make([]string, len(s.LaneCounts))
		for i, n := range s.LaneCounts {
			counts[i] = fmt.Sprint(n)
		}
		printKeyValue("lanes", strings.Join(counts, " / "))
	}
	printNewline()

	rows := make([][]string, 0, len(s.Types))
	for _, ts := range s.Types {
		rows = append(rows, []string{
			ts.Type.String(),
			fmt.Sprint(ts.Count),
			fmt.Sprintf("%.1f%%", 100*ts.Observed),
			fmt.Sprintf("%.1f%%", 100*ts.Expected),
		})
	}
	fmt.Println(newTable("Type", "Count", "Observed", "Expected").Rows(rows...).Render())
}

// printRunTable prints archived run summaries.
func printRunTable(runs []run.Summary) {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		status := ""
		if r.Terminated {
			status = "ended early"
		}
		rows[i] = []string{
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			fmt.Sprint(r.Seed),
			fmt.Sprintf("%d/%d", r.Placed, r.ElementCount),
			status,
		}
	}
	fmt.Println(newTable("ID", "Created", "Seed", "Placed", "").Rows(rows...).Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
