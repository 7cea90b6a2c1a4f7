package actor

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/capabilities"
	"github.com/felixgeelhaar/stepwise/internal/domain/scenario"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, opts ...Option) (*Actor, string) {
	t.Helper()
	dir := t.TempDir()
	registry, err := capabilities.Registry(capabilities.Options{Dir: dir})
	require.NoError(t, err)
	return New(t.Name(), registry, opts...), dir
}

func TestActor_GeneratedMethods(t *testing.T) {
	i, dir := newActor(t)
	ctx := context.Background()

	_, err := i.WriteToFile(ctx, "greeting.txt", "hello stepwise")
	require.NoError(t, err)
	require.NoError(t, i.SeeFileFound(ctx, "greeting.txt"))
	require.NoError(t, i.DontSeeFileFound(ctx, "farewell.txt"))

	contents, err := i.OpenFile(ctx, "greeting.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello stepwise", contents)
	require.NoError(t, i.SeeInThisFile(ctx, "stepwise"))

	_, err = i.AmInPath(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, i.SeeEquals(ctx, 2, 2.0))

	assert.Equal(t, scenario.StatusPassed, i.Status())
	assert.Equal(t, 7, i.Scenario().Len())
}

func TestActor_TraceIsCaller(t *testing.T) {
	i, _ := newActor(t)

	require.NoError(t, i.DontSeeFileFound(context.Background(), "nothing.txt"))

	trace := i.Scenario().Steps()[0].Trace()
	assert.Equal(t, "actor_test.go", filepath.Base(trace.File))
	assert.Positive(t, trace.Line)
}

func TestActor_AssertionFailureStopsWithTrace(t *testing.T) {
	i, _ := newActor(t)

	err := i.SeeFileFound(context.Background(), "missing.txt")
	require.Error(t, err)

	var failure *scenario.StepFailure
	require.ErrorAs(t, err, &failure)
	assert.True(t, step.IsAssertion(err))
	assert.True(t, strings.HasPrefix(err.Error(), failure.Step.Trace().String()))
	assert.Contains(t, err.Error(), `I see file found "missing.txt"`)
	assert.Same(t, failure, i.Err())
	assert.Equal(t, scenario.StatusFailed, i.Status())
}

func TestActor_ConditionalForms(t *testing.T) {
	i, _ := newActor(t)
	ctx := context.Background()

	require.NoError(t, i.CanSeeFileFound(ctx, "missing.txt"))
	require.NoError(t, i.CantSeeEquals(ctx, "a", "a"))
	require.NoError(t, i.CanSeeContains(ctx, "stepwise", "step"))

	failures := i.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "seeFileFound", failures[0].Action)
	assert.Equal(t, "dontSeeEquals", failures[1].Action)
	assert.Equal(t, scenario.StatusIncomplete, i.Status())
	assert.NoError(t, i.Err())
}

func TestActor_TryForms(t *testing.T) {
	i, _ := newActor(t)
	ctx := context.Background()

	ok, err := i.TryToRunShellCommand(ctx, "exit 4")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, i.SeeResultCodeIs(ctx, 4))

	ok, err = i.TryToDeleteFile(ctx, "never-written.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = i.WriteToFile(ctx, "a.txt", "")
	require.NoError(t, err)
	ok, err = i.TryToDeleteFile(ctx, "a.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, scenario.StatusPassed, i.Status())
}

func TestActor_RetryForms(t *testing.T) {
	var sleeps []time.Duration
	i, _ := newActor(t,
		WithRetry(2, 10*time.Millisecond),
		WithSleeper(func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		}),
	)

	err := i.RetrySeeFileFound(context.Background(), "missing.txt")
	require.Error(t, err)
	assert.True(t, step.IsAssertion(err))
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, sleeps)

	retry, ok := i.Scenario().Steps()[0].(*step.RetryStep)
	require.True(t, ok)
	assert.Equal(t, 3, retry.ErrorCount())

	i.SetRetry(0, time.Millisecond)
	sleeps = nil
	_, err = i.RetryWriteToFile(context.Background(), "b.txt", "x")
	require.NoError(t, err)
	assert.Empty(t, sleeps)
}

func TestActor_DoAndSeeByName(t *testing.T) {
	i, _ := newActor(t)
	ctx := context.Background()

	out, err := i.Do(ctx, "runShellCommand", "echo hi")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
	assert.NoError(t, i.See(ctx, "seeInShellOutput", "hi"))

	_, err = i.Do(ctx, "fly")
	assert.ErrorIs(t, err, ports.ErrCapabilityNotAvailable)
}

func TestActor_Comment(t *testing.T) {
	i, _ := newActor(t)

	i.Comment(context.Background(), "Given a clean directory")

	steps := i.Scenario().Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, step.KindComment, steps[0].Kind())
	assert.Equal(t, "Given a clean directory", steps[0].String())
	assert.Equal(t, scenario.StatusPassed, i.Status())
}

type stubStarter struct {
	capability, method string
	params             []any
}

func (s *stubStarter) Start(_ context.Context, capability, method string, params []any) (ports.ResultHandle, error) {
	s.capability, s.method, s.params = capability, method, params
	return stubHandle{}, nil
}

type stubHandle struct{}

func (stubHandle) FetchResult(context.Context) (any, error) { return "from worker", nil }

func TestActor_Async(t *testing.T) {
	starter := &stubStarter{}
	i, _ := newActor(t, WithStarter(starter))

	got, err := i.Async(context.Background(), "Cli", "runShellCommand", "echo hi")
	require.NoError(t, err)
	assert.Equal(t, "from worker", got)
	assert.Equal(t, "Cli", starter.capability)
	assert.Equal(t, "runShellCommand", starter.method)
	assert.Equal(t, []any{"echo hi"}, starter.params)
}
