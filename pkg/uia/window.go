package uia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zoeyai/zoeyuia/pkg/process"
	"github.com/zoeyai/zoeyuia/pkg/wait"
)

// maxParallelWindows FindTopWindowByProcess 同时读取属性的窗口数上限
const maxParallelWindows = 4

func topWindowCriteria(processID int, id, title string) Criteria {
	return Criteria{ControlType: Window, ProcessID: processID, AutomationID: id, Name: title}
}

// TryFindTopWindow 在桌面根节点的直接子节点中查找一次顶层窗口
func TryFindTopWindow(processID int, id, title string) (Node, error) {
	root, err := RootElement()
	if err != nil {
		return nil, err
	}
	return TryFind(root, topWindowCriteria(processID, id, title), ScopeChildren)
}

// FindTopWindow 查找顶层窗口，未出现时轮询等待
func FindTopWindow(ctx context.Context, processID int, id, title string, opts ...Option) (Node, error) {
	root, err := RootElement()
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithScope(ScopeChildren))
	return Find(ctx, root, topWindowCriteria(processID, id, title), opts...)
}

// FindTopWindowByProcess 按进程名（部分匹配）查找顶层窗口
//
// 每轮只枚举一次桌面的直接子节点，并发读取属性后按进程集合过滤，
// 多个进程都有匹配窗口时取 PID 最小的一个。
func FindTopWindowByProcess(ctx context.Context, name, id, title string, opts ...Option) (Node, error) {
	procs, err := process.FindProcess(name)
	if err != nil {
		return nil, err
	}
	if len(procs) == 0 {
		return nil, fmt.Errorf("未找到进程: %s", name)
	}
	pids := make(map[int]bool, len(procs))
	for _, p := range procs {
		pids[p.PID] = true
	}

	root, err := RootElement()
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts...)
	timeout := o.Timeout
	if timeout == 0 {
		timeout = DefaultFindTimeout
	}
	cond := BuildCondition(topWindowCriteria(0, id, title))

	attempt := func(ctx context.Context) wait.Result[Node] {
		windows, err := root.Children()
		if err != nil {
			return wait.Failed[Node](err)
		}
		props := make([]Properties, len(windows))
		errs := make([]error, len(windows))
		var g errgroup.Group
		g.SetLimit(maxParallelWindows)
		for i, w := range windows {
			g.Go(func() error {
				props[i], errs[i] = w.Properties()
				return nil
			})
		}
		_ = g.Wait()

		var best Node
		bestPID := 0
		for i, p := range props {
			if errs[i] != nil || !pids[p.ProcessID] || !cond.Match(p) {
				continue
			}
			if best == nil || p.ProcessID < bestPID {
				best, bestPID = windows[i], p.ProcessID
			}
		}
		if best != nil {
			return wait.Found(best)
		}
		// 窗口可能在枚举过程中关闭，没有命中时才报告读取错误
		if err := errors.Join(errs...); err != nil {
			return wait.Failed[Node](err)
		}
		return wait.Empty[Node]()
	}

	start := time.Now()
	n, ok, err := wait.Until(ctx, attempt, timeout, wait.WithInterval(o.Interval), wait.WithLogger(o.Logger))
	elapsedMs := float64(time.Since(start).Microseconds()) / 1000
	detail := fmt.Sprintf("process=%q id=%q title=%q (%d 个进程)", name, id, title, len(procs))
	if err != nil {
		o.Logger.LogEvent("WIN", false, elapsedMs, detail+" | "+err.Error())
		return nil, err
	}
	if !ok {
		o.Logger.LogEvent("WIN", false, elapsedMs, detail)
		return nil, &NotFoundError{Criteria: topWindowCriteria(0, id, title), Scope: ScopeChildren, Timeout: timeout}
	}
	o.Logger.LogEvent("WIN", true, elapsedMs, detail)
	return n, nil
}
