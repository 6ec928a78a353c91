// Package taskwarrior runs the task command line client to produce report
// text.
package taskwarrior

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	DefaultBinary  = "task"
	DefaultTimeout = 5 * time.Second
	MinTimeout     = 300 * time.Millisecond
)

var runCommandFn = runCommand

// Runner fetches reports by invoking the task binary once per call.
type Runner struct {
	binary  string
	timeout time.Duration
}

// New returns a Runner. An empty binary means DefaultBinary; timeouts below
// MinTimeout are raised to it.
func New(binary string, timeout time.Duration) *Runner {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	if timeout < MinTimeout {
		timeout = MinTimeout
	}
	return &Runner{binary: binary, timeout: timeout}
}

// Fetch runs the report named by directive and returns its trimmed output.
func (r *Runner) Fetch(ctx context.Context, directive []string, color bool) (string, error) {
	out, err := runCommandFn(ctx, r.binary, r.timeout, Args(directive, color)...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Args builds the full argument list for a report directive.
func Args(directive []string, color bool) []string {
	args := make([]string, 0, len(directive)+4)
	args = append(args, "rc.verbose:no", "rc._forcecolor:on")
	if !color {
		args = append(args, "rc.color.active=none")
	}
	args = append(args, "rc.detection:off")
	return append(args, directive...)
}

func runCommand(ctx context.Context, binary string, timeout time.Duration, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, binary, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	out := strings.ToValidUTF8(stdout.String(), "�")
	if err != nil {
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s %s timed out", binary, strings.Join(args, " "))
		}
		msg := strings.TrimSpace(stderr.String())
		// task exits 1 when a filter matches nothing.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && msg == "" {
			return out, nil
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s %s: %s", binary, strings.Join(args, " "), msg)
	}
	return out, nil
}
