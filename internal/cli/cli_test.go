package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semmy-space/lnch/internal/launch"
	"github.com/semmy-space/lnch/internal/output"
	"github.com/semmy-space/lnch/internal/store"
)

type recordingSpawner struct {
	mu       sync.Mutex
	launches []launch.Launch
}

func (r *recordingSpawner) Spawn(_ context.Context, l launch.Launch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.launches = append(r.launches, l)
	return nil
}

type testEnv struct {
	dir     string
	cfgPath string
	spawner *recordingSpawner
	clip    []string
	clipErr error
}

// newTestEnv points lnch at a private config, item list, log and workspace,
// and replaces process spawning and the clipboard with recorders.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		cfgPath: filepath.Join(dir, "config.json5"),
		spawner: &recordingSpawner{},
	}

	cfg := map[string]string{
		"terminal":      "xterm",
		"items_file":    filepath.Join(dir, "data", "items.json"),
		"log_file":      filepath.Join(dir, "state", "lnch.log"),
		"workspace_dir": filepath.Join(dir, "ws"),
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.cfgPath, data, 0o644))

	prevGOOS, prevSpawner, prevClip := goos, newSpawner, writeClipboard
	goos = "linux"
	newSpawner = func() launch.Spawner { return env.spawner }
	writeClipboard = func(s string) error {
		if env.clipErr != nil {
			return env.clipErr
		}
		env.clip = append(env.clip, s)
		return nil
	}
	t.Cleanup(func() {
		goos, newSpawner, writeClipboard = prevGOOS, prevSpawner, prevClip
	})

	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	c := &CLI{}
	parser, err := kong.New(c,
		kong.Name("lnch"),
		kong.Writers(&stdout, &stderr),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(append([]string{"--config", e.cfgPath}, args...))
	if err == nil {
		err = ctx.Run()
	}
	require.NoError(t, c.Close())
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var cliErr *output.CLIError
	require.True(t, errors.As(err, &cliErr), "expected CLIError, got %v", err)
	return cliErr.ExitCode
}

func TestAddListShow(t *testing.T) {
	env := newTestEnv(t)
	folder := t.TempDir()

	out, _, err := env.run(t, "-o", "json", "add", "-n", "docs", folder)
	require.NoError(t, err)

	var added map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, float64(1), added["index"])
	assert.Equal(t, "folder", added["type"])
	assert.Equal(t, "docs", added["name"])

	_, _, err = env.run(t, "add", "example.com")
	require.NoError(t, err)
	_, _, err = env.run(t, "add", "git", "status", "--short")
	require.NoError(t, err)

	out, _, err = env.run(t, "-o", "json", "list")
	require.NoError(t, err)
	var list struct {
		Data  []map[string]any `json:"data"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Equal(t, 3, list.Count)
	assert.Equal(t, "url", list.Data[1]["type"])
	assert.Equal(t, "git status --short", list.Data[2]["path"])
	assert.Equal(t, "command", list.Data[2]["type"])

	out, _, err = env.run(t, "-o", "plain", "list", "--type", "url")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "#\tName\tType\tTarget\tAdded", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2\t\turl\texample.com\t"))

	out, _, err = env.run(t, "-o", "plain", "show", "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "path\t"+folder+"\n")
}

func TestAddErrors(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "add", "example.com")
	require.NoError(t, err)

	_, _, err = env.run(t, "add", "example.com")
	assert.Equal(t, output.ExitConflict, exitCode(t, err))

	_, _, err = env.run(t, "add", "   ")
	assert.Equal(t, output.ExitUsage, exitCode(t, err))
}

func TestOpenDispatchesByType(t *testing.T) {
	env := newTestEnv(t)
	folder := t.TempDir()

	for _, args := range [][]string{
		{"add", "-n", "docs", folder},
		{"add", "example.com"},
		{"add", "-n", "hi", "echo", "hello"},
	} {
		_, _, err := env.run(t, args...)
		require.NoError(t, err)
	}

	_, stderr, err := env.run(t, "-o", "plain", "open", "docs", "2", "hi")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Opened docs (folder)")

	require.Len(t, env.spawner.launches, 3)
	assert.Equal(t, launch.Launch{Name: "xdg-open", Args: []string{folder}}, env.spawner.launches[0])
	assert.Equal(t, launch.Launch{Name: "xdg-open", Args: []string{"https://example.com"}}, env.spawner.launches[1])
	assert.Equal(t, "xterm", env.spawner.launches[2].Name)
	assert.Contains(t, env.spawner.launches[2].String(), "echo hello")

	_, _, err = env.run(t, "open", "missing")
	assert.Equal(t, output.ExitNotFound, exitCode(t, err))
}

func TestDryRunPrintsLaunch(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "-o", "plain", "--dry-run", "launch", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open https://example.com\n", out)
	assert.Empty(t, env.spawner.launches)

	_, stderr, err := env.run(t, "--dry-run", "add", "example.com")
	require.NoError(t, err)
	assert.Contains(t, stderr, `[DRY RUN] Would save "example.com" as url`)

	_, err = os.Stat(filepath.Join(env.dir, "data", "items.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestLaunchAs(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "launch", "--as", "command", "example.com")
	require.NoError(t, err)
	require.Len(t, env.spawner.launches, 1)
	assert.Equal(t, "xterm", env.spawner.launches[0].Name)
}

func TestRmMvClear(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{"a.example.com", "b.example.com", "c.example.com"} {
		_, _, err := env.run(t, "add", target)
		require.NoError(t, err)
	}

	_, _, err := env.run(t, "mv", "3", "1")
	require.NoError(t, err)

	s, err := store.Open(filepath.Join(env.dir, "data", "items.json"))
	require.NoError(t, err)
	items, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, "c.example.com", items[0].Path)

	_, _, err = env.run(t, "mv", "1", "0")
	assert.Equal(t, output.ExitUsage, exitCode(t, err))

	// both refs resolve against the list before either removal
	_, _, err = env.run(t, "rm", "1", "2")
	require.NoError(t, err)
	items, err = s.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b.example.com", items[0].Path)

	_, _, err = env.run(t, "--no-input", "clear")
	assert.Equal(t, output.ExitUsage, exitCode(t, err))

	out, _, err := env.run(t, "-o", "json", "clear", "--confirm")
	require.NoError(t, err)
	assert.JSONEq(t, `{"removed": 1}`, out)
}

func TestEdit(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "add", "-n", "site", "example.com")
	require.NoError(t, err)

	_, _, err = env.run(t, "edit", "site")
	assert.Equal(t, output.ExitUsage, exitCode(t, err))

	out, _, err := env.run(t, "-o", "json", "edit", "site", "--target", "make build", "--no-name")
	require.NoError(t, err)

	var updated map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "make build", updated["path"])
	assert.Equal(t, "command", updated["type"])
	assert.NotContains(t, updated, "name")
}

func TestClassify(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "-o", "json", "classify", "example.com:8080")
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"example.com:8080","type":"url","url":"https://example.com:8080"}`, out)

	out, _, err = env.run(t, "-o", "json", "classify", "ls", "-la")
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"ls -la","type":"command"}`, out)
}

func TestRevealAndCopy(t *testing.T) {
	env := newTestEnv(t)
	folder := t.TempDir()
	for _, args := range [][]string{{"add", folder}, {"add", "example.com"}} {
		_, _, err := env.run(t, args...)
		require.NoError(t, err)
	}

	_, _, err := env.run(t, "reveal", "1")
	require.NoError(t, err)
	require.Len(t, env.spawner.launches, 1)
	assert.Equal(t, "xdg-open", env.spawner.launches[0].Name)

	_, _, err = env.run(t, "reveal", "2")
	assert.Equal(t, output.ExitUsage, exitCode(t, err))

	_, _, err = env.run(t, "copy", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, env.clip)

	env.clipErr = errors.New("no clipboard utilities available")
	_, _, err = env.run(t, "copy", "2")
	assert.Equal(t, output.ExitUnavailable, exitCode(t, err))
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{"a.example.com", "b.example.com"} {
		_, _, err := env.run(t, "add", target)
		require.NoError(t, err)
	}

	file := filepath.Join(env.dir, "items.yaml")
	_, _, err := env.run(t, "export", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "path: a.example.com")

	_, _, err = env.run(t, "import", "--replace", file)
	assert.Equal(t, output.ExitUsage, exitCode(t, err))

	out, _, err := env.run(t, "-o", "json", "import", file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"added": 0}`, out)

	_, _, err = env.run(t, "import", filepath.Join(env.dir, "nope.json"))
	assert.Equal(t, output.ExitNotFound, exitCode(t, err))
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "config", "set", "shell", "zsh")
	require.NoError(t, err)

	out, _, err := env.run(t, "config", "get", "shell")
	require.NoError(t, err)
	assert.Equal(t, "zsh\n", out)

	_, _, err = env.run(t, "config", "set", "default_output", "xml")
	assert.Equal(t, output.ExitUsage, exitCode(t, err))

	_, _, err = env.run(t, "config", "get", "region")
	assert.Equal(t, output.ExitUsage, exitCode(t, err))

	out, _, err = env.run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, env.cfgPath+"\n", out)
}

func TestBrokenConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.cfgPath, []byte("{terminal: "), 0o644))

	_, _, err := env.run(t, "list")
	assert.Equal(t, output.ExitConfigError, exitCode(t, err))
}

func TestPickNeedsTerminal(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "--no-input", "pick")
	assert.Equal(t, output.ExitUsage, exitCode(t, err))
}

func TestWorkspaceAndPaths(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "workspace", "path")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), filepath.Join(env.dir, "ws")))

	out, _, err = env.run(t, "-o", "json", "paths")
	require.NoError(t, err)
	var paths map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &paths))
	assert.Equal(t, env.cfgPath, paths["config"])
	assert.Equal(t, filepath.Join(env.dir, "data", "items.json"), paths["items"])
}

func TestItemRefs(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "items.json"))
	require.NoError(t, err)
	_, err = s.Add(store.Item{Path: "example.com", Name: "site"})
	require.NoError(t, err)
	_, err = s.Add(store.Item{Path: "ls -la"})
	require.NoError(t, err)

	assert.Equal(t, []string{"site", "2"}, itemRefs(s))
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out, _, err := env.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lnch version test\n", out)
}
