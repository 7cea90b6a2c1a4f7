package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/stepwise/internal/domain/capability"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
	"github.com/felixgeelhaar/stepwise/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expect registers the result of running command through the shell.
func expect(runner *mocks.CommandRunner, command string, result ports.CommandResult) {
	name, flag := shell()
	runner.AddResult(name, []string{flag, command}, result)
}

func setup(runner *mocks.CommandRunner) *capability.Registry {
	return capability.NewRegistry().MustRegister(New(runner).Provider())
}

func call(r *capability.Registry, action string, a ...any) (any, error) {
	return r.Call(context.Background(), action, a...)
}

func TestCli_RunShellCommand(t *testing.T) {
	runner := mocks.NewCommandRunner()
	expect(runner, "echo hello", ports.CommandResult{Stdout: "hello\n"})
	r := setup(runner)

	out, err := call(r, "runShellCommand", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "echo hello", calls[0].Args[len(calls[0].Args)-1])

	_, err = call(r, "seeInShellOutput", "hello")
	assert.NoError(t, err)
	_, err = call(r, "dontSeeInShellOutput", "goodbye")
	assert.NoError(t, err)
	_, err = call(r, "seeResultCodeIs", 0)
	assert.NoError(t, err)
}

func TestCli_NonZeroExit(t *testing.T) {
	runner := mocks.NewCommandRunner()
	expect(runner, "cat missing", ports.CommandResult{ExitCode: 2, Stderr: "no such file\n"})
	r := setup(runner)

	_, err := call(r, "runShellCommand", "cat missing")
	require.Error(t, err)
	assert.False(t, step.IsAssertion(err))
	assert.Contains(t, err.Error(), "exited with code 2: no such file")

	_, err = call(r, "seeResultCodeIs", 2.0)
	assert.NoError(t, err)
	_, err = call(r, "seeInShellOutput", "no such file")
	assert.NoError(t, err)

	_, err = call(r, "seeResultCodeIs", 0)
	var assertion *step.AssertionError
	require.ErrorAs(t, err, &assertion)
	assert.Equal(t, 0, assertion.Expected)
	assert.Equal(t, 2, assertion.Actual)
}

func TestCli_AssertionsFailOnOutput(t *testing.T) {
	runner := mocks.NewCommandRunner()
	expect(runner, "true", ports.CommandResult{Stdout: "ok"})
	r := setup(runner)

	_, err := call(r, "runShellCommand", "true")
	require.NoError(t, err)

	_, err = call(r, "seeInShellOutput", "missing")
	assert.True(t, step.IsAssertion(err))
	_, err = call(r, "dontSeeInShellOutput", "ok")
	assert.True(t, step.IsAssertion(err))
}

func TestCli_NothingRunYet(t *testing.T) {
	r := setup(mocks.NewCommandRunner())

	for _, tc := range []struct {
		action string
		arg    any
	}{
		{"seeInShellOutput", "x"},
		{"dontSeeInShellOutput", "x"},
		{"seeResultCodeIs", 0},
	} {
		_, err := call(r, tc.action, tc.arg)
		assert.True(t, step.IsAssertion(err), tc.action)
	}
}

func TestCli_RunnerError(t *testing.T) {
	runner := mocks.NewCommandRunner()
	name, flag := shell()
	runner.AddError(name, []string{flag, "whatever"}, errors.New("exec: not found"))
	r := setup(runner)

	_, err := call(r, "runShellCommand", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exec: not found")

	_, err = call(r, "seeResultCodeIs", 0)
	assert.True(t, step.IsAssertion(err))
}

func TestCli_MissingArgument(t *testing.T) {
	r := setup(mocks.NewCommandRunner())

	_, err := call(r, "runShellCommand")
	require.Error(t, err)
	assert.False(t, step.IsAssertion(err))
}
