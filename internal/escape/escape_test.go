package escape

import (
	"testing"

	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tricky = []string{
	`plain`,
	`/tmp/lnch-workspace`,
	`with space`,
	`it's`,
	`say "hi"`,
	`mixed 'single' and "double"`,
	`back\slash`,
	`C:\Users\me\"odd"\'dir'`,
	`$HOME and $(whoami) and ` + "`id`",
	`semi;colon && pipe | amp &`,
	`glob * ? [x]`,
	`~/notes`,
	`trailing\`,
	`unicode ✓ ünï`,
}

func TestShellRoundTrip(t *testing.T) {
	for _, s := range tricky {
		t.Run(s, func(t *testing.T) {
			words, err := shlex.Split(Shell(s))
			require.NoError(t, err)
			require.Len(t, words, 1)
			assert.Equal(t, s, words[0])
		})
	}
}

func TestShellLeavesSafeWordsAlone(t *testing.T) {
	assert.Equal(t, "/tmp/lnch-workspace", Shell("/tmp/lnch-workspace"))
	assert.Equal(t, "'with space'", Shell("with space"))
}

func TestShellJoin(t *testing.T) {
	args := []string{"gnome-terminal", "--", "bash", "-c", `cd '/tmp/a b' && echo "hi"; exec bash`}

	words, err := shlex.Split(ShellJoin(args...))
	require.NoError(t, err)
	assert.Equal(t, args, words)
}

func TestAppleScriptRoundTrip(t *testing.T) {
	// A double-quoted shell word follows the same backslash rules as an
	// AppleScript literal for the two characters escaped here.
	for _, s := range tricky {
		t.Run(s, func(t *testing.T) {
			words, err := shlex.Split(AppleScriptString(s))
			require.NoError(t, err)
			require.Len(t, words, 1)
			assert.Equal(t, s, words[0])
		})
	}
}

func TestAppleScript(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "no specials", in: "echo hi", expected: "echo hi"},
		{name: "double quote", in: `say "x"`, expected: `say \"x\"`},
		{name: "backslash", in: `a\b`, expected: `a\\b`},
		{name: "single quote untouched", in: `it's`, expected: `it's`},
		{name: "escaped quote", in: `\"`, expected: `\\\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AppleScript(tt.in))
		})
	}
}

func TestNestedRoundTrip(t *testing.T) {
	// The macOS single-line form: a shell line carrying a quoted workspace,
	// wrapped in an AppleScript literal.
	workspace := `/tmp/it's "odd"\dir`
	command := `echo "it's" 'quoted'`
	line := "cd " + Shell(workspace) + " && " + command

	outer, err := shlex.Split(AppleScriptString(line))
	require.NoError(t, err)
	require.Len(t, outer, 1)
	assert.Equal(t, line, outer[0])

	inner, err := shlex.Split(outer[0])
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(inner), 2)
	assert.Equal(t, "cd", inner[0])
	assert.Equal(t, workspace, inner[1])
	assert.Equal(t, []string{"echo", "it's", "quoted"}, inner[3:])
}

func TestCmdPath(t *testing.T) {
	assert.Equal(t, `"C:\Users\me\AppData\Local\Temp\lnch-workspace"`, CmdPath(`C:\Users\me\AppData\Local\Temp\lnch-workspace`))
	assert.Equal(t, `"C:\odd\name"`, CmdPath(`C:\odd"\name`))
}
