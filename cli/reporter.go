package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/grovetools/gate/runner"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Reporter renders run results for the terminal.
type Reporter struct {
	out        io.Writer
	colored    bool
	jsonOutput bool
}

// NewReporter creates a reporter. colorMode is "auto", "always", or
// "never"; auto colors only when out is a terminal.
func NewReporter(out io.Writer, colorMode string, jsonOutput bool) *Reporter {
	colored := false
	switch colorMode {
	case "always":
		colored = true
	case "never":
		colored = false
	default:
		if f, ok := out.(*os.File); ok {
			colored = isatty.IsTerminal(f.Fd())
		}
	}

	return &Reporter{out: out, colored: colored, jsonOutput: jsonOutput}
}

// Report writes the run result.
func (r *Reporter) Report(result *runner.RunResult) error {
	if r.jsonOutput {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for i := range result.Results {
		r.printHook(&result.Results[i])
	}
	r.printSummary(result)
	return nil
}

func (r *Reporter) printHook(hr *runner.HookResult) {
	var marker, label string
	switch hr.Status {
	case runner.StatusPassed:
		marker, label = r.style(passStyle, "✓"), "passed"
	case runner.StatusSkipped:
		marker, label = r.style(skipStyle, "-"), "skipped"
	default:
		marker, label = r.style(failStyle, "✗"), "failed"
	}

	detail := fmt.Sprintf("%s, %d file(s), %s", label, hr.FileCount, hr.Duration.Round(time.Millisecond))
	if hr.Status == runner.StatusSkipped {
		detail = "no files to check"
	}
	fmt.Fprintf(r.out, "%s %s %s\n", marker, hr.Name, r.style(dimStyle, "("+detail+")"))

	if hr.Status != runner.StatusFailed {
		return
	}

	if len(hr.ModifiedFiles) > 0 {
		fmt.Fprintf(r.out, "  files were modified by this hook:\n")
		for _, f := range hr.ModifiedFiles {
			fmt.Fprintf(r.out, "    %s\n", f)
		}
		fmt.Fprintf(r.out, "  review and re-stage them, then retry\n")
	}
	if output := strings.TrimRight(hr.Output, "\n"); output != "" {
		for _, line := range strings.Split(output, "\n") {
			fmt.Fprintf(r.out, "  %s\n", line)
		}
	}
}

func (r *Reporter) printSummary(result *runner.RunResult) {
	var passed, failed, skipped int
	for i := range result.Results {
		switch result.Results[i].Status {
		case runner.StatusPassed:
			passed++
		case runner.StatusSkipped:
			skipped++
		default:
			failed++
		}
	}

	if failed == 0 {
		fmt.Fprintf(r.out, "%s %d passed, %d skipped\n", r.style(passStyle, "All hooks passed:"), passed, skipped)
		return
	}

	summary := fmt.Sprintf("%d failed, %d passed, %d skipped", failed, passed, skipped)
	if result.Aborted {
		summary += " (remaining hooks not run)"
	}
	fmt.Fprintf(r.out, "%s %s\n", r.style(failStyle, "Hooks failed:"), summary)
}

func (r *Reporter) style(s lipgloss.Style, text string) string {
	if !r.colored {
		return text
	}
	return s.Render(text)
}
