// Package cdp 以 Chrome DevTools Protocol 的无障碍树作为控件树后端
//
// 桌面根节点的子节点是浏览器中打开的页面（ControlType.Window），
// 页面之下是 Accessibility.getFullAXTree 返回的节点，被忽略的节点
// 会被展开，其子节点直接挂到上一级。
package cdp

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/zoeyai/zoeyuia/internal/logger"
	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// ErrStale 节点对应的 DOM 元素已不存在
var ErrStale = errors.New("元素已失效")

// Backend CDP 后端
type Backend struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	pid      int
	cancel   context.CancelFunc
}

// Launch 启动本地 Chrome 并连接
func Launch(ctx context.Context, headless bool) (*Backend, error) {
	l := launcher.New().Headless(headless)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动 Chrome 失败: %w", err)
	}

	b, err := connect(ctx, u)
	if err != nil {
		l.Kill()
		return nil, err
	}
	b.launcher = l
	b.pid = l.PID()
	logger.Info("已启动 Chrome: pid=%d, url=%s", b.pid, u)
	return b, nil
}

// Connect 连接已运行的 Chrome，controlURL 为 ws://.../devtools/browser/... 地址
//
// 远程浏览器的进程 ID 未知，节点的 ProcessID 为 0。
func Connect(ctx context.Context, controlURL string) (*Backend, error) {
	b, err := connect(ctx, controlURL)
	if err != nil {
		return nil, err
	}
	logger.Info("已连接 Chrome: %s", controlURL)
	return b, nil
}

func connect(ctx context.Context, controlURL string) (*Backend, error) {
	ctx, cancel := context.WithCancel(ctx)
	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		cancel()
		return nil, fmt.Errorf("连接 Chrome 失败: %w", err)
	}
	return &Backend{browser: browser, cancel: cancel}, nil
}

// Browser 底层浏览器连接
func (b *Backend) Browser() *rod.Browser { return b.browser }

func (b *Backend) Name() string { return "cdp" }

// Root 返回浏览器根节点
func (b *Backend) Root() (uia.Node, error) {
	return &browserNode{b: b}, nil
}

// Close 断开连接。只有 Launch 启动的浏览器会被关闭，Connect 连接的浏览器保持运行
func (b *Backend) Close() error {
	var err error
	if b.launcher != nil {
		err = b.browser.Close()
		b.launcher.Cleanup()
	}
	if b.cancel != nil {
		b.cancel()
	}
	return err
}
