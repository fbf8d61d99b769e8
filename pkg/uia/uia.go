// Package uia 在外部提供的无障碍树（UI Automation 树）之上实现控件定位。
//
// 树本身由外部进程拥有和修改，本包只读取其快照：按控件类型、AutomationId、
// 名称、类名、进程 ID 构造过滤条件，在某个节点的子节点或整棵子树中查找第一个匹配项，
// 并可借助 wait 包在控件尚未出现时轮询等待。
package uia

import (
	"errors"
	"fmt"
	"sync"
)

// Scope 查找范围
type Scope int

const (
	// ScopeChildren 仅直接子节点
	ScopeChildren Scope = iota
	// ScopeDescendants 整棵子树（不含根节点自身）
	ScopeDescendants
)

func (s Scope) String() string {
	switch s {
	case ScopeChildren:
		return "Children"
	case ScopeDescendants:
		return "Descendants"
	default:
		return "Unknown"
	}
}

// Properties 节点的属性快照
type Properties struct {
	ControlType        ControlType `json:"control_type"`
	AutomationID       string      `json:"automation_id"`
	Name               string      `json:"name"`
	ClassName          string      `json:"class_name"`
	ProcessID          int         `json:"process_id"`
	NativeWindowHandle int         `json:"native_window_handle"`
}

// Node 指向外部无障碍树中一个节点的句柄
//
// 实现方在节点已从树中消失时应返回错误；FindFirst 未命中时必须返回 (nil, nil)，
// 不能返回包装在接口里的 nil 指针。
type Node interface {
	// Properties 返回节点当前的属性快照
	Properties() (Properties, error)
	// Children 枚举直接子节点（文档顺序）
	Children() ([]Node, error)
	// FindFirst 在 scope 范围内按文档顺序返回第一个满足 cond 的节点
	FindFirst(scope Scope, cond Condition) (Node, error)
	// GetCurrentPattern 返回节点对某个能力的实现，不支持时返回包装了 ErrPatternNotSupported 的错误
	GetCurrentPattern(id PatternID) (any, error)
}

// ParentNode 可以向上导航的节点，根节点返回 (nil, nil)
type ParentNode interface {
	Node
	Parent() (Node, error)
}

// Parent 返回 n 在原始视图中的父节点，n 为根节点时返回 (nil, nil)
func Parent(n Node) (Node, error) {
	pn, ok := n.(ParentNode)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrParentNotSupported, n)
	}
	return pn.Parent()
}

// Backend 提供桌面根节点的无障碍树实现
type Backend interface {
	Name() string
	Root() (Node, error)
}

var (
	// ErrNoBackend 未设置无障碍树后端
	ErrNoBackend = errors.New("未设置 UI Automation 后端")
	// ErrInvalidCriteria 查找条件缺少控件类型
	ErrInvalidCriteria = errors.New("查找条件必须指定控件类型")
	// ErrParentNotSupported 节点实现不支持向上导航
	ErrParentNotSupported = errors.New("节点不支持获取父节点")
)

var (
	backendMu sync.RWMutex
	backend   Backend
)

// SetBackend 设置全局后端
func SetBackend(b Backend) {
	backendMu.Lock()
	defer backendMu.Unlock()
	backend = b
}

// CurrentBackend 获取全局后端，未设置时返回 nil
func CurrentBackend() Backend {
	backendMu.RLock()
	defer backendMu.RUnlock()
	return backend
}

// RootElement 返回桌面根节点
func RootElement() (Node, error) {
	b := CurrentBackend()
	if b == nil {
		return nil, ErrNoBackend
	}
	root, err := b.Root()
	if err != nil {
		return nil, fmt.Errorf("获取 %s 根节点失败: %w", b.Name(), err)
	}
	return root, nil
}
