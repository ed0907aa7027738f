package output

import (
	"strings"
)

// StackTreeRenderer renders the branch forest rooted at trunk, children
// above their parent
type StackTreeRenderer struct {
	currentBranch string
	trunk         string
	getChildren   func(branchName string) []string
	needsRestack  func(branchName string) bool
	noColor       bool
}

// NewStackTreeRenderer creates a new tree renderer
func NewStackTreeRenderer(
	currentBranch string,
	trunk string,
	getChildren func(branchName string) []string,
	needsRestack func(branchName string) bool,
) *StackTreeRenderer {
	return &StackTreeRenderer{
		currentBranch: currentBranch,
		trunk:         trunk,
		getChildren:   getChildren,
		needsRestack:  needsRestack,
	}
}

// WithoutColor disables styling, for tests and plain output
func (r *StackTreeRenderer) WithoutColor() *StackTreeRenderer {
	r.noColor = true
	return r
}

// Render returns the lines of the tree, top of the stacks first
func (r *StackTreeRenderer) Render() []string {
	return r.branchLines(r.trunk, 0, map[string]bool{})
}

func (r *StackTreeRenderer) branchLines(branchName string, column int, seen map[string]bool) []string {
	if seen[branchName] {
		return nil
	}
	seen[branchName] = true

	children := r.getChildren(branchName)
	var lines []string
	// later siblings are drawn further right and higher up
	for i := len(children) - 1; i >= 0; i-- {
		lines = append(lines, r.branchLines(children[i], column+i, seen)...)
	}
	if len(children) > 1 {
		lines = append(lines, r.joinLine(column, len(children)))
	}
	return append(lines, r.nodeLine(branchName, column))
}

func (r *StackTreeRenderer) prefix(column int) string {
	var b strings.Builder
	for i := 0; i < column; i++ {
		b.WriteString(r.color("│ ", i))
	}
	return b.String()
}

func (r *StackTreeRenderer) joinLine(column, width int) string {
	join := "├" + strings.Repeat("─┴", width-2) + "─┘"
	return r.prefix(column) + r.color(join, column)
}

func (r *StackTreeRenderer) nodeLine(branchName string, column int) string {
	isCurrent := branchName == r.currentBranch
	circle := "◯"
	if isCurrent {
		circle = "◉"
	}

	name := branchName
	if !r.noColor {
		name = ColorBranchName(branchName, isCurrent)
	}
	line := r.prefix(column) + r.color(circle, column) + " " + name
	if branchName != r.trunk && r.needsRestack(branchName) {
		note := "(needs restack)"
		if !r.noColor {
			note = ColorYellow(note)
		}
		line += " " + note
	}
	return line
}

func (r *StackTreeRenderer) color(text string, column int) string {
	if r.noColor {
		return text
	}
	return ColorDepth(text, column)
}
