package wlcreator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// icotoolScript answers -l with a one-variant listing and -x by touching
// the file the real icotool would produce.
const icotoolScript = `
if [ "$1" = "-l" ]; then
	printf -- '--icon --index=0 --width=32 --height=32 --bit-depth=32\n'
else
	b=$(basename "$5" .ico)
	touch "${b}_0_32x32x32.png"
fi
`

func newTestSession(t *testing.T, tools Tools) *Session {
	t.Helper()
	s, err := NewSession(tools)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s, err := NewSession(Tools{})
	require.NoError(t, err)
	assert.DirExists(t, s.Dir)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "junk.png"), nil, 0o644))
	require.NoError(t, s.Clear())
	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, s.Close())
	assert.NoDirExists(t, s.Dir)
}

func TestResolveDirectImage(t *testing.T) {
	s := newTestSession(t, Tools{})

	candidates, err := s.Resolve("/somewhere/logo.png")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "logo.png", candidates[0].Title)
	assert.Equal(t, "/somewhere/logo.png", candidates[0].Preview)
	assert.Empty(t, candidates[0].IcoPath)
}

func TestResolveSingleIcon(t *testing.T) {
	icotool := fakeTool(t, icotoolScript)
	s := newTestSession(t, Tools{Icotool: icotool})

	ico := filepath.Join(t.TempDir(), "app.ico")
	require.NoError(t, os.WriteFile(ico, nil, 0o644))

	candidates, err := s.Resolve(ico)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "app.ico", candidates[0].Title)
	assert.Equal(t, ico, candidates[0].IcoPath)
	assert.Equal(t, filepath.Join(s.Dir, "app_0_32x32x32.png"), candidates[0].Preview)
	assert.FileExists(t, candidates[0].Preview)
}

func TestResolveContainer(t *testing.T) {
	icotool := fakeTool(t, icotoolScript)
	// wrestool -x -t 14 -o <dir> <path>: drop one icon resource named
	// the way wrestool names extracted icon groups.
	wrestool := fakeTool(t, `touch "$5/game.exe_14_MAINICON.ico"`)
	s := newTestSession(t, Tools{Icotool: icotool, Wrestool: wrestool})

	candidates, err := s.Resolve("/games/game.exe")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "MAINICON", candidates[0].Title)
	assert.Equal(t, filepath.Join(s.Dir, "MAINICON.ico"), candidates[0].IcoPath)
	assert.Equal(t, filepath.Join(s.Dir, "MAINICON.png"), candidates[0].Preview)
	assert.FileExists(t, candidates[0].Preview)
}

func TestResolveContainerNoResources(t *testing.T) {
	wrestool := fakeTool(t, `exit 0`)
	s := newTestSession(t, Tools{Wrestool: wrestool})

	_, err := s.Resolve("/games/game.exe")
	assert.Error(t, err)
}

func TestResolveContainerToolFailure(t *testing.T) {
	wrestool := fakeTool(t, `echo "not a PE file" >&2; exit 1`)
	s := newTestSession(t, Tools{Wrestool: wrestool})

	_, err := s.Resolve("/games/game.exe")
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Contains(t, toolErr.Output, "not a PE file")
}

func TestResolveClearsScratch(t *testing.T) {
	s := newTestSession(t, Tools{})
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "stale.png"), nil, 0o644))

	_, err := s.Resolve("/somewhere/logo.svg")
	require.NoError(t, err)

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
