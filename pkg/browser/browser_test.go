package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		goos     string
		expected Command
	}{
		{"darwin", Command{Name: "open", Args: []string{"/tmp/a b.txt"}}},
		{"linux", Command{Name: "xdg-open", Args: []string{"/tmp/a b.txt"}}},
		{"freebsd", Command{Name: "xdg-open", Args: []string{"/tmp/a b.txt"}}},
		{"windows", Command{Name: "explorer.exe", Args: []string{"/tmp/a b.txt"}}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := Open(tt.goos, "/tmp/a b.txt")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := Open("plan9", "/tmp")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestOpenURL(t *testing.T) {
	got, err := OpenURL("windows", "https://example.com/?a=1&b=2")
	require.NoError(t, err)
	assert.Equal(t, "rundll32", got.Name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", "https://example.com/?a=1&b=2"}, got.Args)

	got, err = OpenURL("darwin", "myapp://open")
	require.NoError(t, err)
	assert.Equal(t, Command{Name: "open", Args: []string{"myapp://open"}}, got)

	got, err = OpenURL("linux", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", got.Name)
}

func TestReveal(t *testing.T) {
	got, err := Reveal("darwin", "/Users/me/notes.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"-R", "/Users/me/notes.md"}, got.Args)

	got, err = Reveal("windows", `C:\Users\Me Too\notes.md`)
	require.NoError(t, err)
	assert.Equal(t, `explorer.exe /select,"C:\Users\Me Too\notes.md"`, got.CmdLine)

	got, err = Reveal("linux", "/home/me/docs/notes.md")
	require.NoError(t, err)
	assert.Equal(t, Command{Name: "xdg-open", Args: []string{"/home/me/docs"}}, got)
}
