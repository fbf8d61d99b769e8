//go:build windows

package native

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	procSendMessageW = user32.NewProc("SendMessageW")
	procIsWindow     = user32.NewProc("IsWindow")
)

const WM_SETTEXT = 0x000C

// setWindowText 对窗口句柄发送 WM_SETTEXT
func setWindowText(hwnd int, text string) error {
	if ok, _, _ := procIsWindow.Call(uintptr(hwnd)); ok == 0 {
		return fmt.Errorf("无效的窗口句柄: %d", hwnd)
	}
	ptr, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return err
	}
	ret, _, _ := procSendMessageW.Call(uintptr(hwnd), WM_SETTEXT, 0, uintptr(unsafe.Pointer(ptr)))
	if ret == 0 {
		return fmt.Errorf("WM_SETTEXT 失败: hwnd=%d", hwnd)
	}
	return nil
}
