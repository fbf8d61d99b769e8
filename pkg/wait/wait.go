// Package wait 提供通用的轮询/重试等待工具
//
// 探测函数在截止时间前会被反复调用：返回结果立即成功；返回错误时在截止前忽略，
// 截止后把最后一次错误原样返回；返回空结果且已过截止时间时返回 "无结果"（不是错误）。
package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/zoeyai/zoeyuia/internal/logger"
)

// DefaultInterval 默认轮询间隔
const DefaultInterval = 200 * time.Millisecond

// Outcome 单次探测的结果类别
type Outcome int

const (
	// OutcomeEmpty 没有结果，也没有错误
	OutcomeEmpty Outcome = iota
	// OutcomeFound 得到结果
	OutcomeFound
	// OutcomeFailed 探测本身出错
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeFound:
		return "found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result 单次探测结果
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Err     error
}

// Found 构造成功结果
func Found[T any](v T) Result[T] {
	return Result[T]{Outcome: OutcomeFound, Value: v}
}

// Empty 构造空结果
func Empty[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeEmpty}
}

// Failed 构造失败结果
func Failed[T any](err error) Result[T] {
	return Result[T]{Outcome: OutcomeFailed, Err: err}
}

// Probe 探测函数
type Probe[T any] func(ctx context.Context) Result[T]

// Func 把普通函数适配为 Probe：error 视为失败，零值视为空
func Func[T comparable](fn func() (T, error)) Probe[T] {
	return func(context.Context) Result[T] {
		v, err := fn()
		if err != nil {
			return Failed[T](err)
		}
		var zero T
		if v == zero {
			return Empty[T]()
		}
		return Found(v)
	}
}

// Stats 一次等待的统计信息
type Stats struct {
	Attempts int
	Elapsed  time.Duration
	Outcome  Outcome
}

// Option 等待配置选项
type Option func(*options)

type options struct {
	interval time.Duration
	log      *logger.Logger
	stats    *Stats
}

// WithInterval 设置轮询间隔
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithLogger 设置日志记录器
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithStats 等待结束后把统计信息写入 s
func WithStats(s *Stats) Option {
	return func(o *options) {
		o.stats = s
	}
}

// Until 反复调用 probe 直到得到结果或超过 timeout
//
// 返回值 ok 表示是否得到结果。timeout 为 0 时只探测一次。
// 截止后探测仍然出错则返回该错误；截止后探测为空则返回 (零值, false, nil)。
// ctx 被取消时立即返回 ctx 的错误。
func Until[T any](ctx context.Context, probe Probe[T], timeout time.Duration, opts ...Option) (T, bool, error) {
	o := &options{interval: DefaultInterval, log: logger.Default()}
	for _, opt := range opts {
		opt(o)
	}

	var zero T
	start := time.Now()
	deadline := start.Add(timeout)
	attempts := 0

	finish := func(outcome Outcome) {
		if o.stats != nil {
			*o.stats = Stats{Attempts: attempts, Elapsed: time.Since(start), Outcome: outcome}
		}
		o.log.Debug("wait 结束: %s, 尝试 %d 次, 耗时 %v", outcome, attempts, time.Since(start))
	}

	expired := func() bool {
		return timeout <= 0 || time.Now().After(deadline)
	}

	var lastErr error
	for {
		attempts++
		r := probe(ctx)

		switch r.Outcome {
		case OutcomeFound:
			finish(OutcomeFound)
			return r.Value, true, nil
		case OutcomeFailed:
			lastErr = r.Err
			if expired() {
				finish(OutcomeFailed)
				return zero, false, r.Err
			}
			o.log.Debug("wait 第 %d 次探测失败, 继续重试: %v", attempts, r.Err)
		default:
			if expired() {
				finish(OutcomeEmpty)
				return zero, false, nil
			}
		}

		timer := time.NewTimer(o.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			finish(OutcomeFailed)
			if lastErr != nil {
				return zero, false, fmt.Errorf("等待被取消: %w (最后一次错误: %v)", ctx.Err(), lastErr)
			}
			return zero, false, ctx.Err()
		case <-timer.C:
		}
	}
}
