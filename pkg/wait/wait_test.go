package wait

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zoeyai/zoeyuia/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quiet() Option { return WithLogger(logger.NewNop()) }

// TestUntilFoundFirstCall 立即成功时不应休眠
func TestUntilFoundFirstCall(t *testing.T) {
	calls := 0
	probe := func(context.Context) Result[string] {
		calls++
		return Found("ok")
	}

	var stats Stats
	start := time.Now()
	v, ok, err := Until(context.Background(), probe, 5*time.Second, quiet(), WithStats(&stats))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, stats.Attempts)
	assert.Equal(t, OutcomeFound, stats.Outcome)
	assert.Less(t, time.Since(start), DefaultInterval, "首次成功不应休眠")
}

// TestUntilZeroTimeoutSingleAttempt timeout 为 0 时只探测一次
func TestUntilZeroTimeoutSingleAttempt(t *testing.T) {
	calls := 0
	probe := func(context.Context) Result[int] {
		calls++
		return Empty[int]()
	}

	v, ok, err := Until(context.Background(), probe, 0, quiet())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 1, calls)
}

// TestUntilEmptyUntilDeadline 一直为空时等到截止时间后返回无结果
func TestUntilEmptyUntilDeadline(t *testing.T) {
	const timeout = 300 * time.Millisecond
	interval := 50 * time.Millisecond
	probe := func(context.Context) Result[string] { return Empty[string]() }

	start := time.Now()
	v, ok, err := Until(context.Background(), probe, timeout, quiet(), WithInterval(interval))
	elapsed := time.Since(start)

	require.NoError(t, err, "空结果超时不应返回错误")
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+interval+100*time.Millisecond)
}

// TestUntilErrorAfterDeadline 一直出错时截止后返回该错误
func TestUntilErrorAfterDeadline(t *testing.T) {
	const timeout = 250 * time.Millisecond
	errVanished := errors.New("element vanished")
	calls := 0
	probe := func(context.Context) Result[string] {
		calls++
		return Failed[string](errVanished)
	}

	start := time.Now()
	_, ok, err := Until(context.Background(), probe, timeout, quiet(), WithInterval(50*time.Millisecond))

	require.ErrorIs(t, err, errVanished)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), timeout)
	assert.Greater(t, calls, 1, "截止前的错误应被忽略并重试")
}

// TestUntilTransientErrorThenFound 截止前的瞬时错误被吞掉
func TestUntilTransientErrorThenFound(t *testing.T) {
	calls := 0
	probe := func(context.Context) Result[int] {
		calls++
		if calls < 3 {
			return Failed[int](errors.New("transient"))
		}
		return Found(42)
	}

	v, ok, err := Until(context.Background(), probe, time.Second, quiet(), WithInterval(10*time.Millisecond))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, calls)
}

// TestUntilContextCancel 取消 ctx 时立即返回
func TestUntilContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	probe := func(context.Context) Result[int] {
		cancel()
		return Empty[int]()
	}

	start := time.Now()
	_, ok, err := Until(ctx, probe, 10*time.Second, quiet())

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFuncAdapter(t *testing.T) {
	boom := errors.New("boom")

	assert.Equal(t, OutcomeEmpty, Func(func() (string, error) { return "", nil })(context.Background()).Outcome)
	assert.Equal(t, OutcomeFound, Func(func() (string, error) { return "x", nil })(context.Background()).Outcome)

	r := Func(func() (*int, error) { return nil, boom })(context.Background())
	assert.Equal(t, OutcomeFailed, r.Outcome)
	assert.ErrorIs(t, r.Err, boom)
}
