// Package utils holds small helpers shared by st commands.
package utils

import (
	"regexp"
	"strings"
)

// MaxBranchNameByteLength keeps refs/branch-metadata/<name> within git's
// 256 byte ref limit
const MaxBranchNameByteLength = 234

var (
	invalidBranchChars = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)
	trailingSeparators = regexp.MustCompile(`[/.]+$`)
	repeatedHyphens    = regexp.MustCompile(`-{2,}`)
)

// SanitizeBranchName turns free text into a usable branch name. Runs of
// invalid characters become a single hyphen. It returns "" when nothing
// usable is left.
func SanitizeBranchName(name string) string {
	name = invalidBranchChars.ReplaceAllString(strings.TrimSpace(name), "-")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	name = trailingSeparators.ReplaceAllString(name, "")

	if len(name) > MaxBranchNameByteLength {
		name = strings.TrimRight(name[:MaxBranchNameByteLength], "-/.")
	}
	return name
}
