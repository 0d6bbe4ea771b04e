package target

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInfo struct {
	mode fs.FileMode
}

func (f fakeInfo) Name() string       { return "fake" }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() any           { return nil }

func TestClassifyFilesystem(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0644))

	domainFile := filepath.Join(dir, "example.com")
	require.NoError(t, os.WriteFile(domainFile, nil, 0644))

	spaced := filepath.Join(dir, "my folder")
	require.NoError(t, os.Mkdir(spaced, 0755))

	assert.Equal(t, KindFile, Classify(file))
	assert.Equal(t, KindFolder, Classify(dir))
	assert.Equal(t, KindFolder, Classify(spaced), "existing path with a space is still a folder")

	t.Run("existing path wins over url shape", func(t *testing.T) {
		t.Chdir(dir)
		assert.Equal(t, KindFile, Classify("example.com"))
	})
}

func TestClassifySpecialEntries(t *testing.T) {
	orig := statFn
	t.Cleanup(func() { statFn = orig })

	for _, mode := range []fs.FileMode{fs.ModeSocket, fs.ModeDevice, fs.ModeNamedPipe} {
		statFn = func(string) (fs.FileInfo, error) { return fakeInfo{mode: mode}, nil }
		assert.Equal(t, KindUnknown, Classify("/dev/whatever"), mode.String())
	}
}

func TestClassifyURLs(t *testing.T) {
	tests := []string{
		"https://example.com",
		"http://localhost:8080/path",
		"ftp://files.example.org",
		"myapp://open/settings",
		"vscode://file/tmp/x",
		"example.com",
		"www.example.com",
		"sub.domain.example.co.uk/path/to?q=1",
		"example.com:8443",
		"EXAMPLE.COM/Docs",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			assert.Equal(t, KindURL, Classify(raw))
		})
	}
}

func TestClassifyCommands(t *testing.T) {
	tests := []string{
		"ls -la",
		"echo hello world",
		"git status",
		"ping example.com",
		"example.com/some path",
		"python3 -m http.server",
		"htop",
		"echo 'one'\necho \"two\"",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			assert.Equal(t, KindCommand, Classify(raw))
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, KindUnknown, Classify(""))
		assert.Equal(t, KindUnknown, Classify("   "))
		assert.Equal(t, KindUnknown, Classify("\n\t"))
	})
}

func TestClassifyIsNotCached(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "later")

	assert.Equal(t, KindCommand, Classify(p))

	require.NoError(t, os.Mkdir(p, 0755))
	assert.Equal(t, KindFolder, Classify(p))

	require.NoError(t, os.Remove(p))
	require.NoError(t, os.WriteFile(p, nil, 0644))
	assert.Equal(t, KindFile, Classify(p))
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "bare domain", raw: "example.com", expected: "https://example.com"},
		{name: "bare domain with path", raw: "docs.example.com/a/b", expected: "https://docs.example.com/a/b"},
		{name: "bare domain with port", raw: "example.com:8080", expected: "https://example.com:8080"},
		{name: "custom scheme", raw: "myapp://open", expected: "myapp://open"},
		{name: "https", raw: "https://x.com", expected: "https://x.com"},
		{name: "mailto", raw: "mailto:someone@example.com", expected: "mailto:someone@example.com"},
		{name: "tel", raw: "tel:+15551234", expected: "tel:+15551234"},
		{name: "not url shaped", raw: "localhost", expected: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.raw))
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in       string
		expected Kind
	}{
		{"file", KindFile},
		{"FOLDER", KindFolder},
		{"dir", KindFolder},
		{"url", KindURL},
		{" command ", KindCommand},
		{"cmd", KindCommand},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, k)
		})
	}

	_, err := ParseKind("socket")
	assert.Error(t, err)
}

func TestKindDispatchable(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, k.Dispatchable(), k.String())
	}
	assert.False(t, KindUnknown.Dispatchable())
	assert.False(t, Kind("").Dispatchable())
	assert.Equal(t, "unknown", Kind("").String())
}

func TestTargetLabel(t *testing.T) {
	assert.Equal(t, "Docs", Target{Raw: "https://x.com", DisplayName: "Docs"}.Label())
	assert.Equal(t, "https://x.com", Target{Raw: "https://x.com"}.Label())

	tg := New("echo hi", "greet")
	assert.Equal(t, KindCommand, tg.Kind)
	assert.Equal(t, "greet", tg.DisplayName)
}
