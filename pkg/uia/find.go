package uia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zoeyai/zoeyuia/internal/logger"
	"github.com/zoeyai/zoeyuia/pkg/wait"
)

// DefaultFindTimeout Find 未指定超时时的默认等待时间
const DefaultFindTimeout = time.Second

// ErrElementNotAvailable 在超时前未找到元素
var ErrElementNotAvailable = errors.New("元素不可用")

// NotFoundError 查找超时未命中
type NotFoundError struct {
	Criteria Criteria
	Scope    Scope
	Timeout  time.Duration
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("未找到元素: %s (范围 %s, 等待 %v)", e.Criteria, e.Scope, e.Timeout)
}

// Is 使 errors.Is(err, ErrElementNotAvailable) 成立
func (e *NotFoundError) Is(target error) bool {
	return target == ErrElementNotAvailable
}

// Option 查找配置选项
type Option func(*Options)

// Options 查找配置
type Options struct {
	// Scope 查找范围，默认仅直接子节点
	Scope Scope
	// Timeout 等待时间，0 表示使用 DefaultFindTimeout
	Timeout time.Duration
	// Interval 轮询间隔
	Interval time.Duration
	// Logger 日志记录器，nil 时使用默认 logger
	Logger *logger.Logger
}

// DefaultOptions 默认配置
func DefaultOptions() *Options {
	return &Options{
		Scope:    ScopeChildren,
		Timeout:  0,
		Interval: wait.DefaultInterval,
	}
}

func applyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = logger.Default()
	}
	return o
}

// WithScope 设置查找范围
func WithScope(s Scope) Option {
	return func(o *Options) {
		o.Scope = s
	}
}

// WithSubtree 在整棵子树中查找
func WithSubtree() Option {
	return WithScope(ScopeDescendants)
}

// WithTimeout 设置等待时间
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithInterval 设置轮询间隔
func WithInterval(d time.Duration) Option {
	return func(o *Options) {
		o.Interval = d
	}
}

// WithLogger 设置日志记录器
func WithLogger(l *logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// TryFind 在 root 的 scope 范围内查找一次，未命中返回 (nil, nil)
func TryFind(root Node, c Criteria, scope Scope) (Node, error) {
	if c.ControlType == Unknown {
		return nil, ErrInvalidCriteria
	}
	return root.FindFirst(scope, BuildCondition(c))
}

// Find 查找控件，未出现时轮询等待
//
// 超时仍未命中返回 *NotFoundError；查询树本身出错且已超时时原样返回该错误。
func Find(ctx context.Context, root Node, c Criteria, opts ...Option) (Node, error) {
	if c.ControlType == Unknown {
		return nil, ErrInvalidCriteria
	}
	o := applyOptions(opts...)

	timeout := o.Timeout
	if timeout == 0 {
		timeout = DefaultFindTimeout
	}

	cond := BuildCondition(c)
	attempt := func(context.Context) wait.Result[Node] {
		n, err := root.FindFirst(o.Scope, cond)
		if err != nil {
			return wait.Failed[Node](err)
		}
		if n == nil {
			return wait.Empty[Node]()
		}
		return wait.Found(n)
	}

	var stats wait.Stats
	n, ok, err := wait.Until(ctx, attempt, timeout,
		wait.WithInterval(o.Interval),
		wait.WithLogger(o.Logger),
		wait.WithStats(&stats),
	)
	elapsedMs := float64(stats.Elapsed.Microseconds()) / 1000
	detail := fmt.Sprintf("%s | %s | 尝试 %d 次", cond, o.Scope, stats.Attempts)

	if err != nil {
		o.Logger.LogEvent("FIND", false, elapsedMs, detail+" | "+err.Error())
		return nil, err
	}
	if !ok {
		o.Logger.LogEvent("FIND", false, elapsedMs, detail)
		return nil, &NotFoundError{Criteria: c, Scope: o.Scope, Timeout: timeout}
	}

	o.Logger.LogEvent("FIND", true, elapsedMs, detail)
	return n, nil
}

// FindAll 返回 scope 范围内所有匹配项（文档顺序）
func FindAll(root Node, c Criteria, scope Scope) ([]Node, error) {
	if c.ControlType == Unknown {
		return nil, ErrInvalidCriteria
	}
	cond := BuildCondition(c)

	var matches []Node
	err := Walk(root, scope, func(n Node, p Properties, _ int) bool {
		if cond.Match(p) {
			matches = append(matches, n)
		}
		return true
	})
	return matches, err
}

// FirstChild 返回第一个子节点，没有子节点时返回 nil
func FirstChild(root Node) (Node, error) {
	return root.FindFirst(ScopeChildren, TrueCondition)
}

// WalkFunc 遍历回调，depth 从 0 开始（root 的直接子节点），返回 false 停止遍历
type WalkFunc func(n Node, p Properties, depth int) bool

// Walk 按文档顺序（先序深度优先）遍历 root 的子节点或整棵子树
func Walk(root Node, scope Scope, fn WalkFunc) error {
	_, err := walk(root, scope, 0, fn)
	return err
}

func walk(parent Node, scope Scope, depth int, fn WalkFunc) (bool, error) {
	children, err := parent.Children()
	if err != nil {
		return false, err
	}
	for _, child := range children {
		p, err := child.Properties()
		if err != nil {
			return false, err
		}
		if !fn(child, p, depth) {
			return false, nil
		}
		if scope == ScopeDescendants {
			more, err := walk(child, scope, depth+1, fn)
			if err != nil || !more {
				return false, err
			}
		}
	}
	return true, nil
}

// FindFirstIn 通用的 FindFirst 实现，供没有原生查找能力的后端使用
func FindFirstIn(root Node, scope Scope, cond Condition) (Node, error) {
	var found Node
	err := Walk(root, scope, func(n Node, p Properties, _ int) bool {
		if cond.Match(p) {
			found = n
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
