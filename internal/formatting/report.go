// Package formatting renders per-file results of parse and generation runs
// for terminal output.
package formatting

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText   = color.New(color.Faint).SprintFunc()
)

// FileResult describes the outcome of processing one interface file.
type FileResult struct {
	Path   string
	Detail string // e.g. "2 fields, 1 constant"
	Err    error
}

// FormatFileResult renders a single file result line
func FormatFileResult(r FileResult) string {
	if r.Err != nil {
		return fmt.Sprintf("%s %s: %v", failLabel("FAIL"), r.Path, r.Err)
	}
	if r.Detail != "" {
		return fmt.Sprintf("%s %s %s", okLabel("OK"), r.Path, dimText("("+r.Detail+")"))
	}
	return fmt.Sprintf("%s %s", okLabel("OK"), r.Path)
}

// FormatSummary renders the closing summary line of a run
func FormatSummary(results []FileResult) string {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == 0 {
		return okLabel(fmt.Sprintf("%d file(s) checked, all valid", len(results)))
	}
	return failLabel(fmt.Sprintf("%d of %d file(s) invalid", failed, len(results)))
}

// MessageDetail summarizes a message for the result line
func MessageDetail(fields, constants int) string {
	parts := []string{plural(fields, "field")}
	if constants > 0 {
		parts = append(parts, plural(constants, "constant"))
	}
	return strings.Join(parts, ", ")
}

// ServiceDetail summarizes a service for the result line
func ServiceDetail(requestFields, responseFields int) string {
	return fmt.Sprintf("%s in, %s out",
		plural(requestFields, "field"), plural(responseFields, "field"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
