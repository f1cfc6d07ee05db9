package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")

	l.Info("photos loaded", "tab", "all", "count", 3)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "photos loaded", lines[0]["msg"])
	assert.Equal(t, "all", lines[0]["tab"])
	assert.EqualValues(t, 3, lines[0]["count"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["msg"])
}

func TestRedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info").With("access_token", "abc")

	l.Info("login", "Authorization", "Bearer xyz", "username", "ariel")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, redacted, lines[0]["access_token"])
	assert.Equal(t, redacted, lines[0]["Authorization"])
	assert.Equal(t, "ariel", lines[0]["username"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]clog.Level{
		"debug":   clog.DebugLevel,
		"WARNING": clog.WarnLevel,
		"error":   clog.ErrorLevel,
		"":        clog.InfoLevel,
		"bogus":   clog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestOpenDisabledIsNop(t *testing.T) {
	l, err := Open(Config{Enabled: false, File: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.Equal(t, Nop(), l)
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "photogrip.log")
	l, err := Open(Config{Enabled: true, Level: "info", File: path})
	require.NoError(t, err)

	l.Info("hello")
	require.NoError(t, l.Shutdown())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestGlobalDefaultsToNop(t *testing.T) {
	SetGlobal(nil)
	assert.NotNil(t, GetGlobal())
	assert.Empty(t, CurrentLogFile())
}
