package taskwarrior

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRun(t *testing.T, fn func(context.Context, string, time.Duration, ...string) (string, error)) {
	t.Helper()
	orig := runCommandFn
	t.Cleanup(func() {
		runCommandFn = orig
	})
	runCommandFn = fn
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"rc.verbose:no", "rc._forcecolor:on", "rc.detection:off", "project.not:Home", "due"},
		Args([]string{"project.not:Home", "due"}, true))
	assert.Equal(t,
		[]string{"rc.verbose:no", "rc._forcecolor:on", "rc.color.active=none", "rc.detection:off", "active"},
		Args([]string{"active"}, false))
}

func TestNewDefaults(t *testing.T) {
	r := New("  ", time.Millisecond)
	assert.Equal(t, DefaultBinary, r.binary)
	assert.Equal(t, MinTimeout, r.timeout)
}

func TestFetchTrimsAndPassesArgs(t *testing.T) {
	var gotBinary string
	var gotArgs []string
	stubRun(t, func(_ context.Context, binary string, _ time.Duration, args ...string) (string, error) {
		gotBinary = binary
		gotArgs = args
		return "\n  ID Desc\n1  a  \n\n", nil
	})

	out, err := New("/usr/bin/task", time.Second).Fetch(context.Background(), []string{"due"}, true)
	require.NoError(t, err)
	assert.Equal(t, "ID Desc\n1  a", out)
	assert.Equal(t, "/usr/bin/task", gotBinary)
	assert.Equal(t, "due", gotArgs[len(gotArgs)-1])
}

func TestFetchPropagatesError(t *testing.T) {
	stubRun(t, func(context.Context, string, time.Duration, ...string) (string, error) {
		return "", errors.New("exec: \"task\": executable file not found in $PATH")
	})
	_, err := New("", time.Second).Fetch(context.Background(), []string{"due"}, true)
	assert.ErrorContains(t, err, "executable file not found")
}

func TestRunCommandLossyUTF8(t *testing.T) {
	requireShell(t)
	out, err := runCommand(context.Background(), "sh", time.Second, "-c", `printf 'a\377b'`)
	require.NoError(t, err)
	assert.Equal(t, "a�b", out)
}

func TestRunCommandEmptyMatchIsNotAnError(t *testing.T) {
	requireShell(t)
	out, err := runCommand(context.Background(), "sh", time.Second, "-c", "exit 1")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunCommandStderrBecomesError(t *testing.T) {
	requireShell(t)
	_, err := runCommand(context.Background(), "sh", time.Second, "-c", "echo 'bad filter' >&2; exit 2")
	assert.ErrorContains(t, err, "bad filter")
}

func TestRunCommandTimeout(t *testing.T) {
	requireShell(t)
	_, err := runCommand(context.Background(), "sh", 50*time.Millisecond, "-c", "exec sleep 5")
	assert.ErrorContains(t, err, "timed out")
}
