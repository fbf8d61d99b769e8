// Package python 提供 Python 环境检测和脚本执行功能
package python

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PythonInfo Python 环境信息
type PythonInfo struct {
	Available bool   // Python 是否可用
	Version   string // 版本号，如 "3.11.5"
	Path      string // 可执行文件路径
}

// DetectPython 检测 Python 环境，preferred 非空时优先使用
func DetectPython(preferred ...string) *PythonInfo {
	info := &PythonInfo{}

	candidates := append(append([]string{}, preferred...), "python3", "python")

	for _, name := range candidates {
		if name == "" {
			continue
		}
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}

		version, err := getPythonVersion(path)
		if err != nil {
			continue
		}

		if strings.HasPrefix(version, "2.") {
			continue
		}

		info.Available = true
		info.Version = version
		info.Path = path
		return info
	}

	return info
}

// getPythonVersion 执行 python --version 获取版本号
func getPythonVersion(pythonPath string) (string, error) {
	cmd := exec.Command(pythonPath, "--version")
	hideWindow(cmd)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", err
	}

	return parseVersion(string(output)), nil
}

// parseVersion 从 "Python 3.11.5" 中取出版本号
func parseVersion(output string) string {
	line := strings.TrimSpace(output)
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return line
}

// HasModule 检查解释器能否 import 指定模块
func HasModule(pythonPath, module string) bool {
	cmd := exec.Command(pythonPath, "-c", "import "+module)
	hideWindow(cmd)
	return cmd.Run() == nil
}

// RunScript 执行脚本并返回标准输出，args 追加在 sys.argv[1:]
func RunScript(ctx context.Context, pythonPath, script string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, pythonPath, append([]string{"-c", script}, args...)...)
	hideWindow(cmd) // Windows 上隐藏 cmd 黑色窗口

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("python error: %w\nstderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return bytes.TrimSpace(stdout.Bytes()), nil
}
