//go:build darwin

// Package permissions 检查读取控件树所需的系统权限（macOS 辅助功能）
package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework ApplicationServices
#import <Cocoa/Cocoa.h>
#import <ApplicationServices/ApplicationServices.h>

int checkAccessibilityPermission(int prompt) {
    NSDictionary *options = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}

void openAccessibilityPreferences() {
    NSString *urlString = @"x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility";
    [[NSWorkspace sharedWorkspace] openURL:[NSURL URLWithString:urlString]];
}
*/
import "C"

// Status 权限状态
type Status struct {
	Accessibility bool `json:"accessibility"`
}

// Check 检查辅助功能权限（不触发弹窗）
func Check() Status {
	return Status{Accessibility: C.checkAccessibilityPermission(0) == 1}
}

// RequestAccessibility 请求辅助功能权限（触发系统弹窗）
func RequestAccessibility() bool {
	return C.checkAccessibilityPermission(1) == 1
}

// OpenAccessibilitySettings 打开辅助功能设置页面
func OpenAccessibilitySettings() {
	C.openAccessibilityPreferences()
}

// Instructions 未授权时的提示，已授权返回空串
func Instructions(s Status) string {
	if s.Accessibility {
		return ""
	}
	return "需要授权辅助功能权限才能读取控件树和模拟键盘:\n" +
		"   系统设置 > 隐私与安全性 > 辅助功能\n" +
		"授权后需要重启终端才能生效。"
}
