package pywinauto

import (
	"slices"

	"github.com/zoeyai/zoeyuia/pkg/uia"
	"github.com/zoeyai/zoeyuia/pkg/uia/memtree"
)

// element handle 为 0 表示桌面
type element struct {
	b      *Backend
	handle int
	path   []int
	snap   memtree.Snapshot
}

func (e *element) isDesktop() bool { return e.handle == 0 }

func (e *element) Properties() (uia.Properties, error) {
	return e.snap.Properties(), nil
}

func (e *element) fetch(depth int) (memtree.Snapshot, error) {
	var snap memtree.Snapshot
	err := e.b.call(request{Op: "tree", Handle: e.handle, Path: e.path, Depth: depth}, &snap)
	return snap, err
}

// child 桌面的子节点以自身句柄定位，其余节点沿用父节点句柄并追加下标
func (e *element) child(i int, snap memtree.Snapshot) *element {
	if e.isDesktop() {
		return &element{b: e.b, handle: snap.NativeWindowHandle, snap: snap}
	}
	return &element{b: e.b, handle: e.handle, path: append(slices.Clone(e.path), i), snap: snap}
}

// Parent 顶层窗口的父节点是桌面，桌面没有父节点
func (e *element) Parent() (uia.Node, error) {
	if e.isDesktop() {
		return nil, nil
	}
	if len(e.path) == 0 {
		return e.b.Root()
	}
	parent := &element{b: e.b, handle: e.handle, path: slices.Clone(e.path[:len(e.path)-1])}
	snap, err := parent.fetch(0)
	if err != nil {
		return nil, err
	}
	parent.snap = snap
	return parent, nil
}

func (e *element) Children() ([]uia.Node, error) {
	snap, err := e.fetch(1)
	if err != nil {
		return nil, err
	}
	nodes := make([]uia.Node, 0, len(snap.Children))
	for i, c := range snap.Children {
		nodes = append(nodes, e.child(i, c))
	}
	return nodes, nil
}

// FindFirst 一次取回子树快照后在本地按文档顺序匹配，
// 快照被深度截断的节点从该节点继续取回
func (e *element) FindFirst(scope uia.Scope, cond uia.Condition) (uia.Node, error) {
	depth := 1
	if scope == uia.ScopeDescendants {
		depth = e.b.maxDepth
	}
	snap, err := e.fetch(depth)
	if err != nil {
		return nil, err
	}
	found, err := e.search(snap.Children, scope, cond)
	if err != nil || found == nil {
		return nil, err
	}
	return found, nil
}

func (e *element) search(children []memtree.Snapshot, scope uia.Scope, cond uia.Condition) (*element, error) {
	for i, c := range children {
		el := e.child(i, c)
		if cond.Match(c.Properties()) {
			return el, nil
		}
		if scope != uia.ScopeDescendants {
			continue
		}
		if c.Truncated {
			found, err := el.FindFirst(scope, cond)
			if err != nil {
				return nil, err
			}
			if found != nil {
				return found.(*element), nil
			}
			continue
		}
		found, err := el.search(c.Children, scope, cond)
		if err != nil || found != nil {
			return found, err
		}
	}
	return nil, nil
}

func (e *element) GetCurrentPattern(id uia.PatternID) (any, error) {
	if e.isDesktop() || !e.snap.Supports(id) {
		return nil, uia.NotSupported(id)
	}
	switch id {
	case uia.ValuePatternID:
		return valuePattern{e}, nil
	case uia.SelectionPatternID:
		return selectionPattern{e}, nil
	case uia.InvokePatternID:
		return invokePattern{e}, nil
	}
	return nil, uia.NotSupported(id)
}

type valuePattern struct{ e *element }

func (p valuePattern) Value() (string, error) {
	snap, err := p.e.fetch(0)
	if err != nil {
		return "", err
	}
	return snap.Value, nil
}

func (p valuePattern) SetValue(text string) error {
	return p.e.b.call(request{Op: "set_value", Handle: p.e.handle, Path: p.e.path, Text: text}, nil)
}

type selectionPattern struct{ e *element }

// GetSelection 选中项只返回属性快照，不能继续向下导航
func (p selectionPattern) GetSelection() ([]uia.Node, error) {
	var items []memtree.Snapshot
	if err := p.e.b.call(request{Op: "selection", Handle: p.e.handle, Path: p.e.path}, &items); err != nil {
		return nil, err
	}
	nodes := make([]uia.Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, memtree.FromSnapshot(item))
	}
	return nodes, nil
}

type invokePattern struct{ e *element }

func (p invokePattern) Invoke() error {
	return p.e.b.call(request{Op: "invoke", Handle: p.e.handle, Path: p.e.path}, nil)
}
