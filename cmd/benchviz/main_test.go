package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFailureError(t *testing.T) {
	err := &CheckFailureError{Message: "dataset embedded failed 2 consistency check(s)"}
	assert.Equal(t, "dataset embedded failed 2 consistency check(s)", err.Error())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitSuccess},
		{"check failure", &CheckFailureError{Message: "warn"}, ExitCheckFailed},
		{"wrapped check failure", fmt.Errorf("ctx: %w", &CheckFailureError{Message: "warn"}), ExitCheckFailed},
		{"joined check failure", errors.Join(&CheckFailureError{Message: "warn"}, errors.New("more")), ExitCheckFailed},
		{"regular error", errors.New("creating out.png: permission denied"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
