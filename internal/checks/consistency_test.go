package checks

import (
	"testing"

	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset(models ...dataset.ModelEntry) *dataset.Dataset {
	return &dataset.Dataset{
		Categories: []string{"a", "b", "c"},
		Models:     models,
	}
}

func TestDefaultDatasetPassesAllChecks(t *testing.T) {
	results, err := RunChecks(DefaultCheckers(), dataset.Default())
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Passed, "%s: %s %v", r.Name, r.Summary, r.Details)
		assert.Equal(t, StatusOK, r.Status)
	}
	assert.Empty(t, Failed(results))
}

func TestScoreCountChecker(t *testing.T) {
	tests := []struct {
		name    string
		scores  []float64
		passed  bool
		details int
	}{
		{"matching", []float64{1, 2, 3}, true, 0},
		{"too few", []float64{1, 2}, false, 1},
		{"too many", []float64{1, 2, 3, 4}, false, 1},
		{"none", nil, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := sampleDataset(dataset.ModelEntry{Name: "m", Scores: tt.scores})
			result, err := (&ScoreCountChecker{}).Check(ds)
			require.NoError(t, err)
			require.Equal(t, tt.passed, result.Passed)
			require.Len(t, result.Details, tt.details)
			require.Equal(t, "score-count", result.Name)
		})
	}
}

func TestScoreRangeChecker(t *testing.T) {
	ds := sampleDataset(
		dataset.ModelEntry{Name: "ok", Scores: []float64{0, 50, 100}},
		dataset.ModelEntry{Name: "bad", Scores: []float64{-1, 50, 101}},
	)
	result, err := (&ScoreRangeChecker{}).Check(ds)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, StatusWarning, result.Status)
	assert.Equal(t, []string{"bad: score 1 is -1", "bad: score 3 is 101"}, result.Details)
}

func TestAggregateChecker(t *testing.T) {
	tests := []struct {
		name      string
		aggregate float64
		scores    []float64
		passed    bool
	}{
		{"exact mean", 20, []float64{10, 20, 30}, true},
		{"within tolerance", 20.04, []float64{10, 20, 30}, true},
		{"outside tolerance", 21, []float64{10, 20, 30}, false},
		{"no scores", 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := sampleDataset(dataset.ModelEntry{Name: "m", Scores: tt.scores, AggregateScore: tt.aggregate})
			result, err := (&AggregateChecker{Tolerance: DefaultAggregateTolerance}).Check(ds)
			require.NoError(t, err)
			require.Equal(t, tt.passed, result.Passed)
		})
	}
}

func TestEfficiencyRatioChecker(t *testing.T) {
	tests := []struct {
		name   string
		model  dataset.ModelEntry
		passed bool
	}{
		{"rounded ratio", dataset.ModelEntry{Name: "m", AggregateScore: 52, ParamsBillions: 120, EfficiencyRatio: 0.43}, true},
		{"wrong ratio", dataset.ModelEntry{Name: "m", AggregateScore: 52, ParamsBillions: 120, EfficiencyRatio: 0.5}, false},
		{"zero params", dataset.ModelEntry{Name: "m", AggregateScore: 52, ParamsBillions: 0, EfficiencyRatio: 0.43}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := (&EfficiencyRatioChecker{Tolerance: DefaultRatioTolerance}).Check(sampleDataset(tt.model))
			require.NoError(t, err)
			require.Equal(t, tt.passed, result.Passed)
		})
	}
}

func TestFailed(t *testing.T) {
	results := []*CheckResult{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false},
	}
	failed := Failed(results)
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].Name)
}
