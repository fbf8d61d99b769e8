//go:build !windows

package python

import "os/exec"

func hideWindow(_ *exec.Cmd) {}
