package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// stackColors is the palette used for branch names in the log
var stackColors = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{110, 173, 38},  // Dark green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{244, 98, 81},   // Red
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
	{80, 132, 243},  // Blue
}

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(text)
}

// ColorBranchName renders a branch name, bold when it is checked out
func ColorBranchName(branchName string, isCurrent bool) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	if isCurrent {
		style = style.Bold(true)
	}
	return style.Render(branchName)
}

// ColorDepth colors text with the palette entry for a tree column
func ColorDepth(text string, depth int) string {
	c := stackColors[depth%len(stackColors)]
	hex := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
	return lipgloss.NewStyle().Foreground(hex).Render(text)
}
