//go:build !windows

package command

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealRunner_Run_Success(t *testing.T) {
	result, err := NewRealRunner().Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
}

func TestRealRunner_Run_ExitCodeIsNotAnError(t *testing.T) {
	result, err := NewRealRunner().Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestRealRunner_Run_NotFound(t *testing.T) {
	_, err := NewRealRunner().Run(context.Background(), "nonexistent-command-12345")
	assert.Error(t, err)
}

func TestRealRunner_Options(t *testing.T) {
	dir := t.TempDir()
	runner := NewRealRunner(WithDir(dir), WithEnv("STEPWISE_TEST=on"))

	result, err := runner.Run(context.Background(), "sh", "-c", "pwd; echo $STEPWISE_TEST")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], dir[strings.LastIndex(dir, "/"):])
	assert.Equal(t, "on", lines[1])
}

func TestExecLauncher_Launch(t *testing.T) {
	var stdout bytes.Buffer
	launcher := NewExecLauncher(WithStdio(&stdout, nil), WithLaunchEnv("STEPWISE_TEST=launched"))

	proc, err := launcher.Launch(context.Background(), "sh", "-c", "echo $STEPWISE_TEST")
	require.NoError(t, err)
	assert.Greater(t, proc.Pid(), 0)
	require.NoError(t, proc.Wait())
	assert.Equal(t, "launched\n", stdout.String())
}

func TestExecLauncher_Kill(t *testing.T) {
	proc, err := NewExecLauncher(WithStdio(nil, nil)).Launch(context.Background(), "sleep", "10")
	require.NoError(t, err)

	require.NoError(t, proc.Kill())
	assert.Error(t, proc.Wait())
}

func TestExecLauncher_StartFailure(t *testing.T) {
	_, err := NewExecLauncher().Launch(context.Background(), "nonexistent-command-12345")
	assert.Error(t, err)
}
