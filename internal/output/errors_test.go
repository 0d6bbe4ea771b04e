package output

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCLIError(t *testing.T) {
	err := NewCLIError(ExitNotFound, "item not found")
	assert.Equal(t, ExitNotFound, err.ExitCode)
	assert.Equal(t, "item not found", err.Message)
	assert.Empty(t, err.Hint)
}

func TestCLIErrorWithHint(t *testing.T) {
	err := NewCLIError(ExitNotFound, "item not found")
	result := err.WithHint("Run: lnch list")

	// Fluent builder returns same pointer
	assert.Same(t, err, result)
	assert.Equal(t, "Run: lnch list", err.Hint)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("failed to spawn process")
	err := Wrap(ExitSpawn, "could not open terminal", fmt.Errorf("%w: xterm", cause))

	assert.Equal(t, "could not open terminal: failed to spawn process: xterm", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestExitWithError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := NewWithWriters("plain", false, &stdout, &stderr)

	code := ExitWithError(f, fmt.Errorf("dispatch: %w", NewCLIError(ExitLocked, "item list is locked").WithHint("retry in a moment")))
	assert.Equal(t, ExitLocked, code)
	assert.Equal(t, "error: item list is locked\nhint: retry in a moment\n", stderr.String())

	stderr.Reset()
	code = ExitWithError(f, errors.New("boom"))
	assert.Equal(t, ExitGeneral, code)
	assert.Equal(t, "error: boom\n", stderr.String())
	assert.Empty(t, stdout.String())
}
