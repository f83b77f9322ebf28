package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spboyer/benchviz/internal/dataset"
	"github.com/spboyer/benchviz/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDataset writes the built-in dataset with one substitution applied.
func writeDataset(t *testing.T, old, replacement string) string {
	t.Helper()
	raw := string(dataset.Raw())
	doc := strings.Replace(raw, old, replacement, 1)
	require.NotEqual(t, raw, doc, "substitution %q did not apply", old)

	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestCheckCommand_Embedded(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, _, err := runCLI(t, "check")
	require.NoError(t, err)

	assert.Contains(t, stdout, "DATASET CHECKS (embedded)")
	assert.Contains(t, stdout, "score-count")
	assert.Contains(t, stdout, "efficiency-ratio")
	assert.Contains(t, stdout, "All checks passed.")
}

func TestCheckCommand_JSON(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, _, err := runCLI(t, "check", "--format", "json", "--strict")
	require.NoError(t, err)

	var report struct {
		Source  string `json:"source"`
		Passed  bool   `json:"passed"`
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "embedded", report.Source)
	assert.True(t, report.Passed)
	assert.Len(t, report.Results, 4)
}

func TestCheckCommand_JUnit(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, _, err := runCLI(t, "check", "--format", "junit")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "<?xml"))
	assert.Contains(t, stdout, `<testcase name="aggregate-mean" classname="checks"`)
}

func TestCheckCommand_InconsistentFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeDataset(t, "aggregate_score: 52.0", "aggregate_score: 55.0")

	stdout, _, err := runCLI(t, "check", path)
	require.NoError(t, err, "warnings are advisory without --strict")
	assert.Contains(t, stdout, "GPT OSS: aggregate 55.00, radar mean 52.00")

	_, _, err = runCLI(t, "check", "--strict", path)
	require.Error(t, err)
	var checkErr *CheckFailureError
	require.True(t, errors.As(err, &checkErr))
	assert.Equal(t, ExitCheckFailed, exitCode(err))
}

func TestCheckCommand_ConfiguredTolerance(t *testing.T) {
	path := writeDataset(t, "aggregate_score: 52.0", "aggregate_score: 52.3")

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectconfig.FileName), []byte(`
checks:
  - kind: aggregate-mean
    params:
      tolerance: 0.5
`), 0o644))

	stdout, _, err := runCLI(t, "check", "--strict", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "aggregate-mean")
	assert.NotContains(t, stdout, "efficiency-ratio", "only configured checks run")

	require.NoError(t, os.WriteFile(filepath.Join(dir, projectconfig.FileName), []byte(`
checks:
  - kind: bogus
`), 0o644))
	_, _, err = runCLI(t, "check")
	require.ErrorContains(t, err, "configuring checks[0]")
}

func TestCheckCommand_SchemaError(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeDataset(t, "marker: D", "marker: X")

	stdout, _, err := runCLI(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema error")
	assert.Equal(t, ExitError, exitCode(err))
	assert.Contains(t, stdout, "/models/3/style/marker")
}

func TestCheckCommand_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := runCLI(t, "check", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "reading dataset file")

	_, _, err = runCLI(t, "check", "--format", "xml")
	require.ErrorContains(t, err, "invalid format")
}
