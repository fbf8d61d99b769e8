// Package native 在控件不支持 ValuePattern 时通过系统消息或模拟键盘写入文本
package native

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-vgo/robotgo"
)

// errNoWindowMessage 当前平台不能直接给窗口句柄发消息
var errNoWindowMessage = errors.New("不支持窗口消息")

// Keyboard 模拟键盘所需的最小操作集
type Keyboard interface {
	Activate(pid int) error
	SelectAll()
	Type(text string)
	Paste(text string) error
}

type robotgoKeyboard struct{}

func (robotgoKeyboard) Activate(pid int) error { return robotgo.ActivePid(pid) }

func (robotgoKeyboard) SelectAll() {
	if runtime.GOOS == "darwin" {
		robotgo.KeyTap("a", "cmd")
	} else {
		robotgo.KeyTap("a", "ctrl")
	}
}

func (robotgoKeyboard) Type(text string) { robotgo.TypeStr(text) }

func (robotgoKeyboard) Paste(text string) error {
	if err := robotgo.WriteAll(text); err != nil {
		return err
	}
	if runtime.GOOS == "darwin" {
		robotgo.KeyTap("v", "cmd")
	} else {
		robotgo.KeyTap("v", "ctrl")
	}
	return nil
}

// Sender 实现 uia.NativeTextSender
//
// 有窗口句柄时优先发送 WM_SETTEXT（仅 Windows），失败或没有句柄时
// 激活目标进程窗口，全选后输入文本。
type Sender struct {
	keys    Keyboard
	useClip bool
	setText func(hwnd int, text string) error
}

// Option Sender 选项
type Option func(*Sender)

// WithKeyboard 替换键盘实现
func WithKeyboard(k Keyboard) Option {
	return func(s *Sender) { s.keys = k }
}

// WithClipboard 通过剪贴板粘贴代替逐字输入，适合中文等输入法敏感的文本
func WithClipboard() Option {
	return func(s *Sender) { s.useClip = true }
}

// New 创建 Sender
func New(opts ...Option) *Sender {
	s := &Sender{keys: robotgoKeyboard{}, setText: setWindowText}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendText 向 hwnd / pid 对应的控件写入文本
func (s *Sender) SendText(hwnd, pid int, text string) error {
	if hwnd != 0 {
		if err := s.setText(hwnd, text); err == nil {
			return nil
		}
	}
	if pid <= 0 {
		return fmt.Errorf("无窗口句柄且进程 ID 无效: hwnd=%d, pid=%d", hwnd, pid)
	}

	if err := s.keys.Activate(pid); err != nil {
		return fmt.Errorf("激活窗口失败: %w", err)
	}
	s.keys.SelectAll()
	if s.useClip {
		if err := s.keys.Paste(text); err != nil {
			return fmt.Errorf("粘贴文本失败: %w", err)
		}
		return nil
	}
	s.keys.Type(text)
	return nil
}
