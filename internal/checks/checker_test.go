package checks

import (
	"errors"
	"testing"

	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRunChecks_CollectsErrorsAndContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	ds := dataset.Default()

	broken := NewMockChecker(ctrl)
	broken.EXPECT().Check(ds).Return(nil, errors.New("checker exploded"))

	second := NewMockChecker(ctrl)
	second.EXPECT().Check(ds).Return(&CheckResult{Name: "second", Passed: true}, nil)

	results, err := RunChecks([]Checker{broken, second}, ds)
	require.ErrorContains(t, err, "checker exploded")
	require.Len(t, results, 1)
	require.Equal(t, "second", results[0].Name)
}

func TestRunChecks_PreservesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	ds := &dataset.Dataset{}

	var checkers []Checker
	for _, name := range []string{"a", "b", "c"} {
		m := NewMockChecker(ctrl)
		m.EXPECT().Check(gomock.Any()).Return(&CheckResult{Name: name, Passed: true}, nil)
		checkers = append(checkers, m)
	}

	results, err := RunChecks(checkers, ds)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, want := range []string{"a", "b", "c"} {
		require.Equal(t, want, results[i].Name)
	}
}

func TestDefaultCheckers_Names(t *testing.T) {
	var names []string
	for _, c := range DefaultCheckers() {
		names = append(names, c.Name())
	}
	require.Equal(t, []string{"score-count", "score-range", "aggregate-mean", "efficiency-ratio"}, names)
}
