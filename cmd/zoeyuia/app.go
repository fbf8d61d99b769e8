package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zoeyuia/internal/logger"
	"github.com/zoeyai/zoeyuia/pkg/config"
	"github.com/zoeyai/zoeyuia/pkg/permissions"
	"github.com/zoeyai/zoeyuia/pkg/uia"
	"github.com/zoeyai/zoeyuia/pkg/uia/cdp"
	"github.com/zoeyai/zoeyuia/pkg/uia/memtree"
	"github.com/zoeyai/zoeyuia/pkg/uia/native"
	"github.com/zoeyai/zoeyuia/pkg/uia/pywinauto"
)

// app 命令共享的配置和后端
type app struct {
	configPath string
	backend    string
	snapshot   string
	chromeURL  string
	python     string
	logLevel   string
	requestAX  bool

	cfg     *config.LocatorConfig
	closers []func() error
}

func (a *app) setup(cmd *cobra.Command) error {
	manager := config.GetDefaultManager()
	if a.configPath != "" {
		manager = config.NewManagerWithFile(a.configPath)
	}
	cfg, err := manager.Load()
	if err != nil {
		logger.Warn("加载配置失败, 使用默认配置: %v", err)
	}

	// 命令行参数优先级高于配置文件
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = a.backend
	}
	if flags.Changed("snapshot") {
		cfg.SnapshotFile = a.snapshot
	}
	if flags.Changed("chrome-url") {
		cfg.ChromeURL = a.chromeURL
	}
	if flags.Changed("python") {
		cfg.PythonPath = a.python
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := logger.Default().SetFile(true, cfg.LogFile); err != nil {
			logger.Warn("%v", err)
		}
	}

	a.checkPermission(cmd)

	backend, err := a.openBackend(cmd.Context())
	if err != nil {
		return err
	}
	uia.SetBackend(backend)
	uia.SetNativeTextSender(native.New())
	logger.Debug("使用后端: %s", backend.Name())
	return nil
}

// checkPermission 未授权时提示，--request-permission 时弹出系统授权框，仍未授权则打开设置页面
func (a *app) checkPermission(cmd *cobra.Command) {
	st := permissions.Check()
	if st.Accessibility {
		return
	}
	if a.requestAX {
		if permissions.RequestAccessibility() {
			return
		}
		permissions.OpenAccessibilitySettings()
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "[WARN]", permissions.Instructions(st))
}

func (a *app) openBackend(ctx context.Context) (uia.Backend, error) {
	switch a.cfg.Backend {
	case "memtree":
		if a.cfg.SnapshotFile == "" {
			return nil, fmt.Errorf("memtree 后端需要 --snapshot")
		}
		snap, err := memtree.LoadFile(a.cfg.SnapshotFile)
		if err != nil {
			return nil, err
		}
		return memtree.NewBackend(memtree.FromSnapshot(snap)), nil

	case "pywinauto", "":
		return pywinauto.New(
			pywinauto.WithPython(a.cfg.PythonPath),
			pywinauto.WithMaxDepth(a.cfg.MaxDepth),
		)

	case "cdp":
		var b *cdp.Backend
		var err error
		if a.cfg.ChromeURL != "" {
			b, err = cdp.Connect(ctx, a.cfg.ChromeURL)
		} else {
			b, err = cdp.Launch(ctx, false)
		}
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, b.Close)
		return b, nil
	}
	return nil, fmt.Errorf("未知后端: %s", a.cfg.Backend)
}

// run 包装 RunE，命令结束后释放后端
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if cerr := a.close(); err == nil {
			err = cerr
		}
		return err
	}
}

func (a *app) close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	uia.SetBackend(nil)
	return first
}

// findOptions 配置中的轮询参数，timeout > 0 时覆盖配置
func (a *app) findOptions(timeout time.Duration) []uia.Option {
	if timeout <= 0 {
		timeout = time.Duration(a.cfg.FindTimeout)
	}
	return []uia.Option{
		uia.WithTimeout(timeout),
		uia.WithInterval(time.Duration(a.cfg.PollInterval)),
	}
}
