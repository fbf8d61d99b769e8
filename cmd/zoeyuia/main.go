// zoeyuia 在桌面控件树中查找元素并执行简单操作
//
// Usage:
//
//	zoeyuia windows [--pid N | --process NAME] [--show-process]
//	zoeyuia dump --pid N [--title T] [--json]
//	zoeyuia find --pid N --type Button [--id X] [--name Y] [--subtree] [--all]
//	zoeyuia set-text --pid N --type Edit --id X --text T
//	zoeyuia selection --pid N --type List --id X
//	zoeyuia click --pid N --type Button --name Y
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "zoeyuia",
		Short:         "桌面控件树查找工具",
		Long:          "zoeyuia 通过 UI Automation (pywinauto)、Chrome 无障碍树 (CDP) 或快照文件\n读取控件树，按条件查找元素并写入文本、读取选中项或点击。",
		Version:       fmt.Sprintf("%s (build %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "配置文件 (.json/.yaml)，默认 ~/.zoey-uia/config.json")
	f.StringVar(&a.backend, "backend", "", "后端: pywinauto | cdp | memtree")
	f.StringVar(&a.snapshot, "snapshot", "", "memtree 后端使用的快照文件 (dump --json 的输出)")
	f.StringVar(&a.chromeURL, "chrome-url", "", "cdp 后端连接的 DevTools 地址，为空时启动本地 Chrome")
	f.StringVar(&a.python, "python", "", "pywinauto 后端使用的 Python 解释器")
	f.StringVar(&a.logLevel, "log-level", "", "日志级别: DEBUG | INFO | WARN | ERROR")
	f.BoolVar(&a.requestAX, "request-permission", false, "缺少辅助功能权限时请求授权 (macOS)")

	root.AddCommand(newWindowsCmd(a))
	root.AddCommand(newDumpCmd(a))
	root.AddCommand(newFindCmd(a))
	root.AddCommand(newSetTextCmd(a))
	root.AddCommand(newSelectionCmd(a))
	root.AddCommand(newClickCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "[ERROR]", err)
		os.Exit(1)
	}
}
