package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// target 先定位顶层窗口，再在窗口内按条件查找元素
type target struct {
	pid      int
	process  string
	title    string
	windowID string

	controlType string
	id          string
	name        string
	class       string
	subtree     bool
	timeout     time.Duration
}

func (t *target) bindWindow(f *pflag.FlagSet) {
	f.IntVar(&t.pid, "pid", 0, "窗口所属进程 ID")
	f.StringVar(&t.process, "process", "", "窗口所属进程名（与 --pid 二选一）")
	f.StringVar(&t.title, "title", "", "窗口标题")
	f.StringVar(&t.windowID, "window-id", "", "窗口 AutomationId")
	f.DurationVar(&t.timeout, "timeout", 0, "等待超时，默认取配置中的 find_timeout")
}

func (t *target) bindElement(f *pflag.FlagSet) {
	t.bindWindow(f)
	f.StringVar(&t.controlType, "type", "", "控件类型，如 Button / Edit / ControlType.List")
	f.StringVar(&t.id, "id", "", "控件 AutomationId")
	f.StringVar(&t.name, "name", "", "控件名称")
	f.StringVar(&t.class, "class", "", "控件类名")
	f.BoolVar(&t.subtree, "subtree", false, "在整棵子树中查找（默认只查直接子节点）")
}

func (t *target) hasWindow() bool {
	return t.pid != 0 || t.process != "" || t.title != "" || t.windowID != ""
}

func (t *target) criteria() (uia.Criteria, error) {
	ct, ok := uia.ParseControlType(t.controlType)
	if !ok {
		return uia.Criteria{}, fmt.Errorf("未知控件类型: %q", t.controlType)
	}
	return uia.Criteria{
		ControlType:  ct,
		AutomationID: t.id,
		Name:         t.name,
		ClassName:    t.class,
	}, nil
}

func (t *target) scope() uia.Scope {
	if t.subtree {
		return uia.ScopeDescendants
	}
	return uia.ScopeChildren
}

// window 未指定任何窗口条件时返回桌面根节点
func (t *target) window(ctx context.Context, a *app) (uia.Node, error) {
	if !t.hasWindow() {
		return uia.RootElement()
	}
	opts := a.findOptions(t.timeout)
	if t.process != "" {
		return uia.FindTopWindowByProcess(ctx, t.process, t.windowID, t.title, opts...)
	}
	return uia.FindTopWindow(ctx, t.pid, t.windowID, t.title, opts...)
}

// element 未指定 --type 时返回窗口本身
func (t *target) element(ctx context.Context, a *app) (uia.Node, error) {
	w, err := t.window(ctx, a)
	if err != nil {
		return nil, err
	}
	if t.controlType == "" {
		return w, nil
	}
	c, err := t.criteria()
	if err != nil {
		return nil, err
	}
	return uia.Find(ctx, w, c, append(a.findOptions(t.timeout), uia.WithScope(t.scope()))...)
}
