// Package pywinauto 通过 Python 子进程（pywinauto + UI Automation）访问 Windows 桌面控件树
//
// 每次访问都会启动一个 Python 进程并取回 JSON 快照。元素以
// (顶层窗口句柄, 子节点下标路径) 定位，控件树变化后路径失效，
// 后续调用返回 ErrStale。
package pywinauto

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/zoeyai/zoeyuia/pkg/python"
	"github.com/zoeyai/zoeyuia/pkg/uia"
	"github.com/zoeyai/zoeyuia/pkg/uia/memtree"
)

//go:embed bridge.py
var bridgeScript string

const (
	// DefaultMaxDepth 子树查找时一次取回的最大层数
	DefaultMaxDepth = 12
	// DefaultCallTimeout 单次 Python 调用超时
	DefaultCallTimeout = 30 * time.Second
)

var (
	// ErrUnsupported 当前环境不能使用该后端
	ErrUnsupported = errors.New("pywinauto 后端不可用")
	// ErrStale 元素已不在控件树中
	ErrStale = errors.New("元素已失效")
)

// BridgeError 桥接脚本返回的错误
type BridgeError struct {
	Code    string
	Message string
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("pywinauto %s: %s", e.Code, e.Message)
}

func (e *BridgeError) Is(target error) bool {
	switch e.Code {
	case "stale":
		return target == ErrStale
	case "not_supported":
		return target == uia.ErrPatternNotSupported
	case "no_pywinauto":
		return target == ErrUnsupported
	}
	return false
}

// Runner 执行桥接脚本，request 为 JSON 请求，返回脚本标准输出
type Runner func(ctx context.Context, script string, request []byte) ([]byte, error)

// Backend pywinauto 后端
type Backend struct {
	python      string
	maxDepth    int
	callTimeout time.Duration
	run         Runner
}

// Option 后端选项
type Option func(*Backend)

// WithPython 指定 Python 解释器
func WithPython(path string) Option {
	return func(b *Backend) { b.python = path }
}

// WithMaxDepth 设置子树查找深度上限
func WithMaxDepth(depth int) Option {
	return func(b *Backend) {
		if depth > 0 {
			b.maxDepth = depth
		}
	}
}

// WithCallTimeout 设置单次调用超时
func WithCallTimeout(d time.Duration) Option {
	return func(b *Backend) {
		if d > 0 {
			b.callTimeout = d
		}
	}
}

// WithRunner 替换脚本执行方式，设置后不再检测本机环境
func WithRunner(r Runner) Option {
	return func(b *Backend) { b.run = r }
}

// IsSupported 当前平台是否可用（Windows + Python 3 + pywinauto）
func IsSupported(pythonPath string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	info := python.DetectPython(pythonPath)
	return info.Available && python.HasModule(info.Path, "pywinauto")
}

// New 创建后端
func New(opts ...Option) (*Backend, error) {
	b := &Backend{maxDepth: DefaultMaxDepth, callTimeout: DefaultCallTimeout}
	for _, opt := range opts {
		opt(b)
	}
	if b.run != nil {
		return b, nil
	}

	if runtime.GOOS != "windows" {
		return nil, fmt.Errorf("%w: 仅支持 Windows", ErrUnsupported)
	}
	info := python.DetectPython(b.python)
	if !info.Available {
		return nil, fmt.Errorf("%w: 未检测到 Python 3", ErrUnsupported)
	}
	if !python.HasModule(info.Path, "pywinauto") {
		return nil, fmt.Errorf("%w: 未安装 pywinauto (pip install pywinauto)", ErrUnsupported)
	}
	b.run = func(ctx context.Context, script string, request []byte) ([]byte, error) {
		return python.RunScript(ctx, info.Path, script, string(request))
	}
	return b, nil
}

func (b *Backend) Name() string { return "pywinauto" }

// Root 返回桌面根元素
func (b *Backend) Root() (uia.Node, error) {
	return &element{b: b, snap: memtree.Snapshot{ControlType: "Pane", Name: "Desktop"}}, nil
}

type request struct {
	Op     string `json:"op"`
	Handle int    `json:"handle"`
	Path   []int  `json:"path,omitempty"`
	Depth  int    `json:"depth,omitempty"`
	Text   string `json:"text,omitempty"`
}

type response struct {
	OK    bool            `json:"ok"`
	Code  string          `json:"code,omitempty"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func (b *Backend) call(req request, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.callTimeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	raw, err := b.run(ctx, bridgeScript, payload)
	if err != nil {
		return fmt.Errorf("pywinauto %s 调用失败: %w", req.Op, err)
	}

	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("解析 pywinauto 输出失败: %w", err)
	}
	if !resp.OK {
		return &BridgeError{Code: resp.Code, Message: resp.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("解析 pywinauto 输出失败: %w", err)
	}
	return nil
}
