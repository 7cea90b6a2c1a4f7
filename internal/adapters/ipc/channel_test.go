package ipc

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPair returns the controller and worker ends of a channel with a
// short timeout.
func newTestPair(t *testing.T) (*Channel, *Channel, Config) {
	t.Helper()

	cfg, err := NewTempPair(t.TempDir())
	require.NoError(t, err)
	cfg.PollInterval = 5 * time.Millisecond
	cfg.ReadTimeout = 300 * time.Millisecond

	controller, err := NewChannel(cfg)
	require.NoError(t, err)
	worker, err := NewChannel(cfg.Mirror())
	require.NoError(t, err)

	return controller, worker, cfg
}

func TestChannel_RoundTrip(t *testing.T) {
	t.Parallel()
	controller, worker, _ := newTestPair(t)
	ctx := context.Background()

	require.NoError(t, controller.Write(ctx, map[string]any{"a": 1, "b": "x"}))

	got, err := worker.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": "x"}, got)
}

func TestChannel_Ordering(t *testing.T) {
	t.Parallel()
	controller, worker, _ := newTestPair(t)
	ctx := context.Background()

	require.NoError(t, worker.Write(ctx, "m1"))
	require.NoError(t, worker.Write(ctx, "m2"))

	first, err := controller.Read(ctx)
	require.NoError(t, err)
	second, err := controller.Read(ctx)
	require.NoError(t, err)

	assert.Equal(t, "m1", first)
	assert.Equal(t, "m2", second)
}

func TestChannel_ReadCursorAdvances(t *testing.T) {
	t.Parallel()
	controller, worker, cfg := newTestPair(t)
	ctx := context.Background()

	assert.Equal(t, int64(0), worker.ReadCursor())
	require.NoError(t, controller.Write(ctx, []int{1, 2}))

	_, err := worker.Read(ctx)
	require.NoError(t, err)

	info, err := os.Stat(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), worker.ReadCursor())
	assert.Equal(t, int64(len("size=5\n[1,2]\n")), worker.ReadCursor())
}

func TestChannel_ReadTimeout(t *testing.T) {
	t.Parallel()
	controller, _, _ := newTestPair(t)

	start := time.Now()
	got, err := controller.Read(context.Background())

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrReadTimeout)
	assert.True(t, IsProtocolError(err))
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestChannel_TimeoutAfterConsumedMessage(t *testing.T) {
	t.Parallel()
	controller, worker, _ := newTestPair(t)
	ctx := context.Background()

	require.NoError(t, controller.Write(ctx, "only"))
	_, err := worker.Read(ctx)
	require.NoError(t, err)

	// No stale re-read of the consumed frame.
	_, err = worker.Read(ctx)
	assert.ErrorIs(t, err, ErrReadTimeout)
}

func TestChannel_WaitsForLateWriter(t *testing.T) {
	t.Parallel()
	controller, worker, _ := newTestPair(t)
	ctx := context.Background()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = worker.Write(ctx, map[string]any{"late": true})
	}()

	got, err := controller.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"late": true}, got)
}

func TestChannel_DecodeFailureIsFatal(t *testing.T) {
	t.Parallel()
	_, worker, cfg := newTestPair(t)

	require.NoError(t, os.WriteFile(cfg.OutputPath, EncodeFrame([]byte("{not json")), 0o600))

	_, err := worker.Read(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Fatal())
	assert.Equal(t, "decode", pe.Op)
}

func TestChannel_LengthMismatchIsFatal(t *testing.T) {
	t.Parallel()
	_, worker, cfg := newTestPair(t)

	require.NoError(t, os.WriteFile(cfg.OutputPath, []byte("size=2\n\"abc\"\n"), 0o600))

	_, err := worker.Read(context.Background())
	assert.ErrorIs(t, err, ErrCorruptFrame)
	assert.True(t, IsProtocolError(err))
	assert.Equal(t, int64(0), worker.ReadCursor())
}

func TestChannel_ReadInto(t *testing.T) {
	t.Parallel()
	controller, worker, _ := newTestPair(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, controller.Write(ctx, payload{Name: "x", Count: 3}))

	var got payload
	require.NoError(t, worker.ReadInto(ctx, &got))
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestChannel_ContextCancelled(t *testing.T) {
	t.Parallel()
	controller, _, _ := newTestPair(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := controller.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, controller.Write(ctx, 1), context.Canceled)
}

func TestChannel_ConcurrentWritersAreSerialized(t *testing.T) {
	t.Parallel()
	controller, worker, _ := newTestPair(t)
	ctx := context.Background()

	const writers, perWriter = 4, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = worker.Write(ctx, map[string]int{"writer": w, "seq": i})
			}
		}(w)
	}
	wg.Wait()

	lastSeq := map[float64]float64{}
	for i := 0; i < writers*perWriter; i++ {
		got, err := controller.Read(ctx)
		require.NoError(t, err)
		msg := got.(map[string]any)
		w, seq := msg["writer"].(float64), msg["seq"].(float64)
		if prev, ok := lastSeq[w]; ok {
			assert.Greater(t, seq, prev)
		}
		lastSeq[w] = seq
	}
	assert.Len(t, lastSeq, writers)
}

func TestNewChannel_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewChannel(Config{InputPath: "a"})
	assert.Error(t, err)

	_, err = NewChannel(Config{InputPath: "a", OutputPath: "a"})
	assert.Error(t, err)

	ch, err := NewChannel(Config{InputPath: "a", OutputPath: "b"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPollInterval, ch.pollInterval)
	assert.Equal(t, DefaultReadTimeout, ch.readTimeout)
}

func TestConfig_MirrorAndRemove(t *testing.T) {
	t.Parallel()

	cfg, err := NewTempPair(t.TempDir())
	require.NoError(t, err)
	assert.FileExists(t, cfg.InputPath)
	assert.FileExists(t, cfg.OutputPath)
	assert.Equal(t, filepath.Dir(cfg.InputPath), filepath.Dir(cfg.OutputPath))

	mirror := cfg.Mirror()
	assert.Equal(t, cfg.InputPath, mirror.OutputPath)
	assert.Equal(t, cfg.OutputPath, mirror.InputPath)

	require.NoError(t, cfg.Remove())
	assert.NoFileExists(t, cfg.InputPath)
	assert.NoFileExists(t, cfg.OutputPath)
	require.NoError(t, cfg.Remove())
}

func TestEnvelope(t *testing.T) {
	t.Parallel()

	env, err := NewEnvelope(MessageResult, "req-1", map[string]any{"ok": true})
	require.NoError(t, err)
	assert.Equal(t, MessageResult, env.Name)
	assert.Equal(t, ProtocolVersion, env.Protocol)
	assert.False(t, env.Timestamp.IsZero())

	var got map[string]bool
	require.NoError(t, env.Decode(&got))
	assert.Equal(t, map[string]bool{"ok": true}, got)

	empty, err := NewEnvelope(MessageParams, "", nil)
	require.NoError(t, err)
	var untouched []any
	require.NoError(t, empty.Decode(&untouched))
	assert.Nil(t, untouched)

	bad := &Envelope{Name: MessageResult, Value: []byte(`"str"`)}
	var n int
	assert.ErrorIs(t, bad.Decode(&n), ErrDecode)
}

func TestCheckProtocol(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckProtocol("v1.0.0"))
	assert.NoError(t, CheckProtocol("v1.4.2"))
	assert.True(t, IsProtocolError(CheckProtocol("v2.0.0")))
	assert.True(t, IsProtocolError(CheckProtocol("1.0.0")))
	assert.True(t, IsProtocolError(CheckProtocol("")))
}
