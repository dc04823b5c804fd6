package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailure = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// printSummary prints the per-source outcome table and the output location.
func printSummary(results []snapshot.Result, outputDir string, fileCount int) {
	fmt.Println(styleTitle.Render("snapshot run"))
	for _, res := range results {
		icon := styleSuccess.Render(iconSuccess)
		detail := styleDim.Render(res.Duration.String())
		if res.Err != nil {
			icon = styleFailure.Render(iconError)
			detail = styleFailure.Render(res.Err.Error())
		}
		fmt.Printf("%s %s %s\n", icon, styleValue.Render(fmt.Sprintf("%-12s", res.Name)), detail)
	}
	fmt.Println("  " + styleDim.Render(iconArrow) + " " +
		styleValue.Render(fmt.Sprintf("%s (%d files)", outputDir, fileCount)))
}
