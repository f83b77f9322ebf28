package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type layoutDoc struct {
	Size struct {
		DPI float64 `json:"dpi" yaml:"dpi"`
	} `json:"size" yaml:"size"`
	Panels []struct {
		Kind     string `json:"kind" yaml:"kind"`
		Polygons []struct {
			Name     string `json:"name" yaml:"name"`
			Vertices []struct {
				Value float64 `json:"value" yaml:"value"`
			} `json:"vertices" yaml:"vertices"`
		} `json:"polygons" yaml:"polygons"`
		Points []struct {
			Name string  `json:"name" yaml:"name"`
			Area float64 `json:"area" yaml:"area"`
		} `json:"points" yaml:"points"`
	} `json:"panels" yaml:"panels"`
}

func checkLayout(t *testing.T, doc layoutDoc) {
	t.Helper()
	assert.Equal(t, 300.0, doc.Size.DPI)
	require.Len(t, doc.Panels, 2)

	radar, scatter := doc.Panels[0], doc.Panels[1]
	assert.Equal(t, "radar", radar.Kind)
	require.Len(t, radar.Polygons, 4)
	for _, p := range radar.Polygons {
		require.Len(t, p.Vertices, 6, p.Name)
		assert.Equal(t, p.Vertices[0], p.Vertices[5], p.Name)
	}

	assert.Equal(t, "scatter", scatter.Kind)
	require.Len(t, scatter.Points, 4)
	for _, p := range scatter.Points {
		assert.GreaterOrEqual(t, p.Area, 100.0, p.Name)
	}
}

func TestLayoutCommand_YAML(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := runCLI(t, "layout")
	require.NoError(t, err)

	var doc layoutDoc
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	checkLayout(t, doc)
}

func TestLayoutCommand_JSON(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := runCLI(t, "layout", "--format", "json")
	require.NoError(t, err)

	var doc layoutDoc
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	checkLayout(t, doc)
}

func TestLayoutCommand_BadFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := runCLI(t, "layout", "--format", "toml")
	require.ErrorContains(t, err, "invalid format")
}
