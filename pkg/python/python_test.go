package python

import (
	"context"
	"testing"
)

func TestParseVersion(t *testing.T) {
	cases := map[string]string{
		"Python 3.11.5\n": "3.11.5",
		"3.12.0":          "3.12.0",
		"Python 2.7.18":   "2.7.18",
	}
	for in, want := range cases {
		if got := parseVersion(in); got != want {
			t.Errorf("parseVersion(%q) = %q, 期望 %q", in, got, want)
		}
	}
}

func TestRunScript(t *testing.T) {
	info := DetectPython()
	if !info.Available {
		t.Skip("未检测到 Python 3, 跳过")
	}
	t.Logf("Python %s: %s", info.Version, info.Path)

	out, err := RunScript(context.Background(), info.Path, "import sys; print(sys.argv[1])", "你好")
	if err != nil {
		t.Fatalf("执行脚本失败: %v", err)
	}
	if string(out) != "你好" {
		t.Errorf("输出不匹配: 期望 你好, 实际 %q", out)
	}

	if !HasModule(info.Path, "json") {
		t.Error("json 模块应可导入")
	}
	if HasModule(info.Path, "no_such_module_zoeyuia") {
		t.Error("不存在的模块不应可导入")
	}
}
