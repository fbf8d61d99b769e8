// Package memtree 提供内存中的无障碍树实现，用于测试和离线回放 dump 结果
package memtree

import (
	"errors"
	"sync"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// ErrDetached 节点已从树中移除
var ErrDetached = errors.New("节点已从树中移除")

// Node 内存树节点
type Node struct {
	mu       sync.RWMutex
	props    uia.Properties
	parent   *Node
	children []*Node
	patterns map[uia.PatternID]any
	detached bool
	failWith error
}

// New 创建节点并挂上子节点
func New(props uia.Properties, children ...*Node) *Node {
	n := &Node{props: props, patterns: make(map[uia.PatternID]any)}
	n.Add(children...)
	return n
}

// Add 追加子节点
func (n *Node) Add(children ...*Node) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range children {
		c.mu.Lock()
		c.parent = n
		c.detached = false
		c.mu.Unlock()
		n.children = append(n.children, c)
	}
	return n
}

// Remove 移除子节点，被移除的节点之后的查询都会返回 ErrDetached
func (n *Node) Remove(child *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			c.mu.Lock()
			c.parent = nil
			c.detached = true
			c.mu.Unlock()
			return
		}
	}
}

// Parent 返回父节点，根节点返回 (nil, nil)
func (n *Node) Parent() (uia.Node, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if err := n.check(); err != nil {
		return nil, err
	}
	if n.parent == nil {
		return nil, nil
	}
	return n.parent, nil
}

// SetProperties 替换属性快照
func (n *Node) SetProperties(p uia.Properties) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.props = p
}

// SetPattern 设置节点对某能力的实现
func (n *Node) SetPattern(id uia.PatternID, impl any) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.patterns[id] = impl
	return n
}

// FailWith 让之后的查询都返回 err，传 nil 恢复
func (n *Node) FailWith(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failWith = err
}

func (n *Node) check() error {
	if n.failWith != nil {
		return n.failWith
	}
	if n.detached {
		return ErrDetached
	}
	return nil
}

func (n *Node) Properties() (uia.Properties, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if err := n.check(); err != nil {
		return uia.Properties{}, err
	}
	return n.props, nil
}

func (n *Node) Children() ([]uia.Node, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if err := n.check(); err != nil {
		return nil, err
	}
	out := make([]uia.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out, nil
}

func (n *Node) FindFirst(scope uia.Scope, cond uia.Condition) (uia.Node, error) {
	return uia.FindFirstIn(n, scope, cond)
}

func (n *Node) GetCurrentPattern(id uia.PatternID) (any, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if err := n.check(); err != nil {
		return nil, err
	}
	impl, ok := n.patterns[id]
	if !ok {
		return nil, uia.NotSupported(id)
	}
	return impl, nil
}

// Backend 以一棵内存树作为桌面
type Backend struct {
	Desktop *Node
}

// NewBackend 创建以 desktop 为根的后端
func NewBackend(desktop *Node) *Backend {
	return &Backend{Desktop: desktop}
}

func (b *Backend) Name() string { return "memtree" }

func (b *Backend) Root() (uia.Node, error) {
	if b.Desktop == nil {
		return nil, errors.New("memtree: 未设置桌面根节点")
	}
	return b.Desktop, nil
}
