package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/benchviz/internal/checks"
)

// CheckReport gathers schema validation and consistency results for one
// dataset document.
type CheckReport struct {
	Source       string                `json:"source"`
	SchemaErrors []string              `json:"schema_errors,omitempty"`
	Results      []*checks.CheckResult `json:"results"`
}

// Passed reports whether the document is schema-valid and every
// consistency check passed.
func (r *CheckReport) Passed() bool {
	return len(r.SchemaErrors) == 0 && len(checks.Failed(r.Results)) == 0
}

// Warnings counts the failed consistency checks.
func (r *CheckReport) Warnings() int {
	return len(checks.Failed(r.Results))
}

// WriteCheckText prints a check summary table.
func WriteCheckText(w io.Writer, r *CheckReport) error {
	nameWidth := runewidth.StringWidth("Check")
	for _, res := range r.Results {
		nameWidth = max(nameWidth, runewidth.StringWidth(res.Name))
	}
	nameWidth = max(nameWidth, runewidth.StringWidth("schema"))
	const colStatus = 8
	totalWidth := nameWidth + colStatus + 4 + 40

	var b strings.Builder
	b.WriteString(strings.Repeat("═", totalWidth) + "\n")
	b.WriteString(fmt.Sprintf(" DATASET CHECKS (%s)\n", r.Source))
	b.WriteString(strings.Repeat("═", totalWidth) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s  %s\n", padRight("Check", nameWidth), padRight("Status", colStatus), "Summary"))
	b.WriteString(strings.Repeat("─", totalWidth) + "\n")

	if len(r.SchemaErrors) == 0 {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n", padRight("schema", nameWidth), padRight("✅", colStatus), "Document matches the dataset schema"))
	} else {
		b.WriteString(fmt.Sprintf("%s  %s  %d schema error(s)\n", padRight("schema", nameWidth), padRight("❌", colStatus), len(r.SchemaErrors)))
		for _, e := range r.SchemaErrors {
			b.WriteString(fmt.Sprintf("%s    %s\n", strings.Repeat(" ", nameWidth+colStatus), e))
		}
	}

	for _, res := range r.Results {
		status := "✅"
		if !res.Passed {
			status = "⚠️"
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s\n", padRight(res.Name, nameWidth), padRight(status, colStatus), res.Summary))
		for _, d := range res.Details {
			b.WriteString(fmt.Sprintf("%s    - %s\n", strings.Repeat(" ", nameWidth+colStatus), d))
		}
	}

	b.WriteString("\n")
	switch {
	case len(r.SchemaErrors) > 0:
		b.WriteString("Dataset is not valid.\n")
	case r.Warnings() > 0:
		b.WriteString(fmt.Sprintf("%d advisory warning(s). Rendering is not affected.\n", r.Warnings()))
	default:
		b.WriteString("All checks passed.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCheckJSON prints the report as indented JSON.
func WriteCheckJSON(w io.Writer, r *CheckReport) error {
	out := struct {
		*CheckReport
		Passed bool `json:"passed"`
	}{r, r.Passed()}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding check report: %w", err)
	}
	return nil
}
