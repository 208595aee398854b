package exitcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodexForgeBR/daedalus/internal/exitcode"
)

func TestExitCodeValues(t *testing.T) {
	assert.Equal(t, 0, exitcode.Success)
	assert.Equal(t, 1, exitcode.Error)
	assert.Equal(t, 2, exitcode.MissingDependency)
	assert.Equal(t, 3, exitcode.ToolFailed)
	assert.Equal(t, 130, exitcode.Interrupted)
}

func TestExitCodeNames(t *testing.T) {
	tests := []struct {
		code         int
		expectedName string
	}{
		{exitcode.Success, "Success"},
		{exitcode.Error, "Error"},
		{exitcode.MissingDependency, "MissingDependency"},
		{exitcode.ToolFailed, "ToolFailed"},
		{exitcode.Interrupted, "Interrupted"},
		{42, "unknown"},
		{-1, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedName, func(t *testing.T) {
			assert.Equal(t, tt.expectedName, exitcode.Name(tt.code))
		})
	}
}
