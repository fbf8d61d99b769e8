package python

import (
	"os/exec"
	"syscall"
)

// hideWindow 避免每次调用解释器都弹出控制台窗口
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
