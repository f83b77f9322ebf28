package checks

import (
	"fmt"
	"math"

	"github.com/spboyer/benchviz/internal/dataset"
)

// Default tolerances. Aggregates are authored to one decimal and ratios to
// two or three, so each tolerance is half the coarsest authored precision.
const (
	DefaultAggregateTolerance = 0.05
	DefaultRatioTolerance     = 0.005
)

// ScoreCountChecker verifies every model has one radar score per category.
type ScoreCountChecker struct{}

var _ Checker = (*ScoreCountChecker)(nil)

func (*ScoreCountChecker) Name() string { return string(KindScoreCount) }

func (c *ScoreCountChecker) Check(ds *dataset.Dataset) (*CheckResult, error) {
	want := len(ds.Categories)
	var details []string
	for _, m := range ds.Models {
		if len(m.Scores) != want {
			details = append(details, fmt.Sprintf("%s: %d scores for %d categories", m.Name, len(m.Scores), want))
		}
	}
	return newResult(c.Name(), details,
		fmt.Sprintf("All %d models have %d radar scores", len(ds.Models), want),
		fmt.Sprintf("%d model(s) have a score count that does not match the categories", len(details)),
	), nil
}

// ScoreRangeChecker verifies radar scores fall inside [0, 100].
type ScoreRangeChecker struct{}

var _ Checker = (*ScoreRangeChecker)(nil)

func (*ScoreRangeChecker) Name() string { return string(KindScoreRange) }

func (c *ScoreRangeChecker) Check(ds *dataset.Dataset) (*CheckResult, error) {
	var details []string
	for _, m := range ds.Models {
		for i, s := range m.Scores {
			if s < 0 || s > 100 || math.IsNaN(s) {
				details = append(details, fmt.Sprintf("%s: score %d is %g", m.Name, i+1, s))
			}
		}
	}
	return newResult(c.Name(), details,
		"All radar scores are within 0-100",
		fmt.Sprintf("%d radar score(s) outside 0-100", len(details)),
	), nil
}

// AggregateChecker compares each scatter aggregate with the mean of the
// same model's radar scores.
type AggregateChecker struct {
	Tolerance float64
}

var _ Checker = (*AggregateChecker)(nil)

func (*AggregateChecker) Name() string { return string(KindAggregateMean) }

func (c *AggregateChecker) Check(ds *dataset.Dataset) (*CheckResult, error) {
	var details []string
	for _, m := range ds.Models {
		if len(m.Scores) == 0 {
			details = append(details, fmt.Sprintf("%s: no radar scores to average", m.Name))
			continue
		}
		avg := mean(m.Scores)
		if math.Abs(avg-m.AggregateScore) > c.Tolerance {
			details = append(details, fmt.Sprintf("%s: aggregate %.2f, radar mean %.2f", m.Name, m.AggregateScore, avg))
		}
	}
	return newResult(c.Name(), details,
		"Aggregate scores match the radar score means",
		fmt.Sprintf("%d aggregate score(s) differ from the radar mean by more than %g", len(details), c.Tolerance),
	), nil
}

// EfficiencyRatioChecker compares each efficiency ratio with
// aggregate score / parameter count.
type EfficiencyRatioChecker struct {
	Tolerance float64
}

var _ Checker = (*EfficiencyRatioChecker)(nil)

func (*EfficiencyRatioChecker) Name() string { return string(KindEfficiencyRatio) }

func (c *EfficiencyRatioChecker) Check(ds *dataset.Dataset) (*CheckResult, error) {
	var details []string
	for _, m := range ds.Models {
		if m.ParamsBillions <= 0 {
			details = append(details, fmt.Sprintf("%s: parameter count %g cannot yield a ratio", m.Name, m.ParamsBillions))
			continue
		}
		want := m.AggregateScore / m.ParamsBillions
		if math.Abs(want-m.EfficiencyRatio) > c.Tolerance {
			details = append(details, fmt.Sprintf("%s: ratio %g, aggregate/params %.3f", m.Name, m.EfficiencyRatio, want))
		}
	}
	return newResult(c.Name(), details,
		"Efficiency ratios match aggregate score per billion parameters",
		fmt.Sprintf("%d efficiency ratio(s) differ from aggregate/params by more than %g", len(details), c.Tolerance),
	), nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
