package cdp

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

type browserNode struct{ b *Backend }

func (n *browserNode) Properties() (uia.Properties, error) {
	return uia.Properties{ControlType: uia.Pane, Name: "Chrome", ProcessID: n.b.pid}, nil
}

func (n *browserNode) Children() ([]uia.Node, error) {
	pages, err := n.b.browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("获取页面列表失败: %w", err)
	}
	nodes := make([]uia.Node, 0, len(pages))
	for _, p := range pages {
		info, err := p.Info()
		if err != nil {
			return nil, fmt.Errorf("获取页面信息失败: %w", err)
		}
		nodes = append(nodes, &pageNode{b: n.b, page: p, info: info})
	}
	return nodes, nil
}

func (n *browserNode) Parent() (uia.Node, error) { return nil, nil }

func (n *browserNode) FindFirst(scope uia.Scope, cond uia.Condition) (uia.Node, error) {
	return markLive(uia.FindFirstIn(n, scope, cond))
}

func (n *browserNode) GetCurrentPattern(id uia.PatternID) (any, error) {
	return nil, uia.NotSupported(id)
}

// pageNode 一个页面（标签页），AutomationID 为 target id
type pageNode struct {
	b    *Backend
	page *rod.Page
	info *proto.TargetTargetInfo
}

func (n *pageNode) Properties() (uia.Properties, error) {
	return uia.Properties{
		ControlType:  uia.Window,
		AutomationID: string(n.info.TargetID),
		Name:         n.info.Title,
		ProcessID:    n.b.pid,
	}, nil
}

func (n *pageNode) snapshot() (*axTree, error) {
	res, err := proto.AccessibilityGetFullAXTree{}.Call(n.page)
	if err != nil {
		return nil, fmt.Errorf("读取无障碍树失败: %w", err)
	}
	depth := -1
	doc, err := proto.DOMGetDocument{Depth: &depth, Pierce: true}.Call(n.page)
	if err != nil {
		return nil, fmt.Errorf("读取 DOM 失败: %w", err)
	}
	t := newAXTree(n.page, n.b.pid, res.Nodes, doc.Root)
	t.owner = n
	t.refresh = n.snapshot
	return t, nil
}

func (n *pageNode) Children() ([]uia.Node, error) {
	t, err := n.snapshot()
	if err != nil {
		return nil, err
	}
	if t.root == nil {
		return nil, nil
	}
	return []uia.Node{&axNode{t: t, n: t.root, live: true}}, nil
}

func (n *pageNode) Parent() (uia.Node, error) {
	return &browserNode{b: n.b}, nil
}

func (n *pageNode) FindFirst(scope uia.Scope, cond uia.Condition) (uia.Node, error) {
	return markLive(uia.FindFirstIn(n, scope, cond))
}

// markLive 查找结果交给调用方后，之后的导航都重新抓取
func markLive(found uia.Node, err error) (uia.Node, error) {
	if ax, ok := found.(*axNode); ok {
		ax.live = true
	}
	return found, err
}

func (n *pageNode) GetCurrentPattern(id uia.PatternID) (any, error) {
	return nil, uia.NotSupported(id)
}

// axNode 无障碍树节点
//
// live 节点在 Children 和 FindFirst 前重新抓取页面的无障碍树，并按 NodeID 在新树中定位自身；
// 由 live 节点枚举出的子节点只在同一份快照内导航，一次遍历最多抓取两次。
type axNode struct {
	t    *axTree
	n    *proto.AccessibilityAXNode
	live bool
}

func (n *axNode) role() string { return axString(n.n.Role) }

func (n *axNode) Properties() (uia.Properties, error) {
	return n.t.properties(n.n), nil
}

// current 返回最新快照中的同一节点，节点已消失时返回 ErrStale
func (n *axNode) current() (*axNode, error) {
	if n.t.refresh == nil {
		return n, nil
	}
	t, err := n.t.refresh()
	if err != nil {
		return nil, err
	}
	found, ok := t.nodes[n.n.NodeID]
	if !ok || found.Ignored {
		return nil, fmt.Errorf("%w: 无障碍节点 %s 已不在页面中", ErrStale, n.n.NodeID)
	}
	return &axNode{t: t, n: found}, nil
}

func (n *axNode) Children() ([]uia.Node, error) {
	cur := n
	if n.live {
		var err error
		if cur, err = n.current(); err != nil {
			return nil, err
		}
	}
	children := cur.t.children(cur.n)
	nodes := make([]uia.Node, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, &axNode{t: cur.t, n: c})
	}
	return nodes, nil
}

// FindFirst 每次调用都在新抓取的快照上查找，命中的节点为 live 节点
func (n *axNode) FindFirst(scope uia.Scope, cond uia.Condition) (uia.Node, error) {
	cur, err := n.current()
	if err != nil {
		return nil, err
	}
	return markLive(uia.FindFirstIn(cur, scope, cond))
}

// Parent 跳过被忽略的祖先，无障碍树根节点的父节点是所在页面
func (n *axNode) Parent() (uia.Node, error) {
	p := n.t.nodes[n.n.ParentID]
	for p != nil && p.Ignored {
		p = n.t.nodes[p.ParentID]
	}
	if p != nil {
		return &axNode{t: n.t, n: p, live: n.live}, nil
	}
	if n.t.owner != nil {
		return n.t.owner, nil
	}
	return nil, nil
}

func (n *axNode) GetCurrentPattern(id uia.PatternID) (any, error) {
	role := n.role()
	switch {
	case id == uia.ValuePatternID && valueRoles[role]:
		return valuePattern{n}, nil
	case id == uia.InvokePatternID && invokeRoles[role]:
		return invokePattern{n}, nil
	case id == uia.SelectionPatternID && selectionRoles[role]:
		return selectionPattern{n}, nil
	}
	return nil, uia.NotSupported(id)
}

// element 解析出对应的 DOM 元素
func (n *axNode) element() (*rod.Element, error) {
	if n.n.BackendDOMNodeID == 0 || n.t.page == nil {
		return nil, fmt.Errorf("%w: 节点没有对应的 DOM 元素", ErrStale)
	}
	res, err := proto.DOMResolveNode{BackendNodeID: n.n.BackendDOMNodeID}.Call(n.t.page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStale, err)
	}
	return n.t.page.ElementFromObject(res.Object)
}

type valuePattern struct{ n *axNode }

func (p valuePattern) Value() (string, error) {
	el, err := p.n.element()
	if err != nil {
		return "", err
	}
	v, err := el.Property("value")
	if err != nil {
		return "", err
	}
	if v.Nil() {
		return axString(p.n.n.Value), nil
	}
	return v.Str(), nil
}

func (p valuePattern) SetValue(text string) error {
	el, err := p.n.element()
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("选中文本失败: %w", err)
	}
	return el.Input(text)
}

type invokePattern struct{ n *axNode }

func (p invokePattern) Invoke() error {
	el, err := p.n.element()
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

type selectionPattern struct{ n *axNode }

// GetSelection 子树中带 selected 属性的节点，按文档顺序
func (p selectionPattern) GetSelection() ([]uia.Node, error) {
	var out []uia.Node
	var visit func(*proto.AccessibilityAXNode)
	visit = func(parent *proto.AccessibilityAXNode) {
		for _, c := range p.n.t.children(parent) {
			if isSelected(c) {
				out = append(out, &axNode{t: p.n.t, n: c})
			}
			visit(c)
		}
	}
	visit(p.n.n)
	return out, nil
}
