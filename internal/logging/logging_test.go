package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Setup(false, false, false)
	})
}

func TestSetupLevels(t *testing.T) {
	restoreDefault(t)

	Setup(true, false, false)
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Setup(true, true, false)
	assert.Equal(t, log.ErrorLevel, log.GetLevel(), "quiet wins over verbose")

	Setup(false, false, false)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestNewUsesPrefixAndOutput(t *testing.T) {
	restoreDefault(t)
	Setup(false, false, false)

	var buf bytes.Buffer
	SetOutput(&buf)
	New("session").Info("refreshed", "tabs", 3)

	out := buf.String()
	assert.Contains(t, out, "session")
	assert.Contains(t, out, "refreshed")
	assert.Contains(t, out, "tabs=3")
}

func TestJSONFormat(t *testing.T) {
	restoreDefault(t)
	Setup(false, false, true)

	var buf bytes.Buffer
	SetOutput(&buf)
	New("cli").Warn("config key ignored", "key", "colour")
	assert.Contains(t, buf.String(), `"msg":"config key ignored"`)
}

func TestOpenFile(t *testing.T) {
	w, closeFn, err := OpenFile("")
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)
	require.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "tasktabs.log")
	w, closeFn, err = OpenFile(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "line\n")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}
