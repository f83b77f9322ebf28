// Package checks provides advisory consistency checks over a dataset.
// Rendering never depends on them: the radar scores and the scatter
// metrics are authored independently and may legitimately disagree.
package checks

import (
	"errors"

	"github.com/spboyer/benchviz/internal/dataset"
)

// CheckStatus represents the two-tier status model used by dataset checks.
type CheckStatus string

const (
	// StatusOK indicates the check passes.
	StatusOK CheckStatus = "ok"
	// StatusWarning indicates a potential issue was detected.
	StatusWarning CheckStatus = "warning"
)

// CheckResult holds the outcome of a single dataset check.
type CheckResult struct {
	// Name is a stable check identifier used in output and downstream processing.
	Name string `json:"name"`
	// Status is StatusOK when Passed, StatusWarning otherwise.
	Status CheckStatus `json:"status"`
	// Passed indicates whether the check met its acceptance criteria.
	Passed bool `json:"passed"`
	// Summary is a human-readable one-line result intended for concise display.
	Summary string `json:"summary"`
	// Details lists one line per offending model or category.
	Details []string `json:"details,omitempty"`
}

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=checker.go -destination=mock_checker_test.go -package=checks

// Checker runs a single dataset check.
type Checker interface {
	Name() string
	Check(*dataset.Dataset) (*CheckResult, error)
}

// RunChecks executes each checker against ds, collecting results and errors.
func RunChecks(checkers []Checker, ds *dataset.Dataset) ([]*CheckResult, error) {
	var (
		errs    []error
		results []*CheckResult
	)
	for _, c := range checkers {
		r, err := c.Check(ds)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, r)
	}
	return results, errors.Join(errs...)
}

// DefaultCheckers returns every dataset checker in display order.
func DefaultCheckers() []Checker {
	return []Checker{
		&ScoreCountChecker{},
		&ScoreRangeChecker{},
		&AggregateChecker{Tolerance: DefaultAggregateTolerance},
		&EfficiencyRatioChecker{Tolerance: DefaultRatioTolerance},
	}
}

// Failed returns the results that did not pass.
func Failed(results []*CheckResult) []*CheckResult {
	var out []*CheckResult
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func newResult(name string, details []string, ok, warn string) *CheckResult {
	if len(details) == 0 {
		return &CheckResult{Name: name, Status: StatusOK, Passed: true, Summary: ok}
	}
	return &CheckResult{Name: name, Status: StatusWarning, Summary: warn, Details: details}
}
