//go:build !darwin

// Package permissions 检查读取控件树所需的系统权限
package permissions

// Status 权限状态
type Status struct {
	Accessibility bool `json:"accessibility"`
}

// Check 非 macOS 系统不需要额外授权
func Check() Status {
	return Status{Accessibility: true}
}

// RequestAccessibility 请求辅助功能权限
func RequestAccessibility() bool {
	return true
}

// OpenAccessibilitySettings 打开辅助功能设置页面
func OpenAccessibilitySettings() {}

// Instructions 未授权时的提示
func Instructions(s Status) string {
	return ""
}
