package uia

import (
	"errors"
	"fmt"
	"sync"
)

// NativeTextSender 不支持 ValuePattern 时写入文本的平台原生通道
// Windows 上对窗口句柄发送 WM_SETTEXT；其它平台激活进程窗口后模拟键盘输入。
type NativeTextSender interface {
	SendText(hwnd, pid int, text string) error
}

// ErrNoNativeSender 未设置原生文本通道
var ErrNoNativeSender = errors.New("控件不支持 ValuePattern 且未设置原生文本通道")

var (
	nativeMu     sync.RWMutex
	nativeSender NativeTextSender
)

// SetNativeTextSender 设置原生文本通道
func SetNativeTextSender(s NativeTextSender) {
	nativeMu.Lock()
	defer nativeMu.Unlock()
	nativeSender = s
}

func currentNativeSender() NativeTextSender {
	nativeMu.RLock()
	defer nativeMu.RUnlock()
	return nativeSender
}

// SetText 设置控件文本：优先使用 ValuePattern，不支持时回退到原生通道
func SetText(n Node, text string) error {
	vp, ok, err := TryGetPattern[ValuePattern](n)
	if err != nil {
		return err
	}
	if ok {
		if err := vp.SetValue(text); err != nil {
			return fmt.Errorf("ValuePattern 设置文本失败: %w", err)
		}
		return nil
	}

	sender := currentNativeSender()
	if sender == nil {
		return ErrNoNativeSender
	}

	p, err := n.Properties()
	if err != nil {
		return err
	}
	if err := sender.SendText(p.NativeWindowHandle, p.ProcessID, text); err != nil {
		return fmt.Errorf("原生方式设置文本失败 (hwnd=%d): %w", p.NativeWindowHandle, err)
	}
	return nil
}

// GetSelectionText 返回第一个选中项的名称，没有选中项时返回空字符串
func GetSelectionText(n Node) (string, error) {
	sp, err := GetPattern[SelectionPattern](n)
	if err != nil {
		return "", err
	}

	items, err := sp.GetSelection()
	if err != nil {
		return "", fmt.Errorf("读取选中项失败: %w", err)
	}
	if len(items) == 0 {
		return "", nil
	}

	p, err := items[0].Properties()
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// Invoke 调用控件的默认操作（如点击按钮）
func Invoke(n Node) error {
	ip, err := GetPattern[InvokePattern](n)
	if err != nil {
		return err
	}
	return ip.Invoke()
}
