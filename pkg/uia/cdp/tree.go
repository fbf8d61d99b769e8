package cdp

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

var roleTypes = map[string]uia.ControlType{
	"RootWebArea":      uia.Document,
	"WebArea":          uia.Document,
	"document":         uia.Document,
	"button":           uia.Button,
	"PopUpButton":      uia.Button,
	"link":             uia.Hyperlink,
	"textbox":          uia.Edit,
	"searchbox":        uia.Edit,
	"checkbox":         uia.CheckBox,
	"switch":           uia.CheckBox,
	"radio":            uia.RadioButton,
	"combobox":         uia.ComboBox,
	"list":             uia.List,
	"listbox":          uia.List,
	"listitem":         uia.ListItem,
	"option":           uia.ListItem,
	"menu":             uia.Menu,
	"menubar":          uia.MenuBar,
	"menuitem":         uia.MenuItem,
	"menuitemcheckbox": uia.MenuItem,
	"menuitemradio":    uia.MenuItem,
	"tab":              uia.TabItem,
	"tablist":          uia.Tab,
	"table":            uia.Table,
	"grid":             uia.DataGrid,
	"treegrid":         uia.DataGrid,
	"row":              uia.DataItem,
	"cell":             uia.DataItem,
	"gridcell":         uia.DataItem,
	"columnheader":     uia.HeaderItem,
	"rowheader":        uia.HeaderItem,
	"tree":             uia.Tree,
	"treeitem":         uia.TreeItem,
	"progressbar":      uia.ProgressBar,
	"slider":           uia.Slider,
	"spinbutton":       uia.Spinner,
	"scrollbar":        uia.ScrollBar,
	"separator":        uia.Separator,
	"toolbar":          uia.ToolBar,
	"tooltip":          uia.ToolTip,
	"status":           uia.StatusBar,
	"dialog":           uia.Window,
	"alertdialog":      uia.Window,
	"image":            uia.Image,
	"img":              uia.Image,
	"StaticText":       uia.Text,
	"LabelText":        uia.Text,
	"heading":          uia.Text,
	"paragraph":        uia.Text,
	"group":            uia.Group,
	"radiogroup":       uia.Group,
	"form":             uia.Group,
	"region":           uia.Group,
	"navigation":       uia.Group,
	"main":             uia.Group,
	"banner":           uia.Group,
	"contentinfo":      uia.Group,
	"complementary":    uia.Group,
	"search":           uia.Group,
	"section":          uia.Group,
	"article":          uia.Group,
	"generic":          uia.Group,
}

// controlTypeOf 未收录的角色映射为 Custom
func controlTypeOf(role string) uia.ControlType {
	if ct, ok := roleTypes[role]; ok {
		return ct
	}
	return uia.Custom
}

var (
	valueRoles     = roleSet("textbox", "searchbox", "combobox", "spinbutton")
	invokeRoles    = roleSet("button", "PopUpButton", "link", "menuitem", "menuitemcheckbox", "menuitemradio", "tab", "checkbox", "switch", "radio", "option", "treeitem")
	selectionRoles = roleSet("listbox", "tablist", "tree", "grid", "treegrid", "radiogroup")
)

func roleSet(roles ...string) map[string]bool {
	m := make(map[string]bool, len(roles))
	for _, r := range roles {
		m[r] = true
	}
	return m
}

type domAttrs struct {
	id    string
	class string
}

// axTree 一次 getFullAXTree 的结果，refresh 为 nil 时不会重新抓取
type axTree struct {
	page    *rod.Page
	pid     int
	nodes   map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode
	root    *proto.AccessibilityAXNode
	attrs   map[proto.DOMBackendNodeID]domAttrs
	owner   uia.Node
	refresh func() (*axTree, error)
}

func newAXTree(page *rod.Page, pid int, nodes []*proto.AccessibilityAXNode, doc *proto.DOMNode) *axTree {
	t := &axTree{
		page:  page,
		pid:   pid,
		nodes: make(map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode, len(nodes)),
		attrs: make(map[proto.DOMBackendNodeID]domAttrs),
	}
	for _, n := range nodes {
		t.nodes[n.NodeID] = n
		if t.root == nil && n.ParentID == "" {
			t.root = n
		}
	}
	if doc != nil {
		collectAttrs(doc, t.attrs)
	}
	return t
}

func collectAttrs(n *proto.DOMNode, into map[proto.DOMBackendNodeID]domAttrs) {
	var a domAttrs
	for i := 0; i+1 < len(n.Attributes); i += 2 {
		switch n.Attributes[i] {
		case "id":
			a.id = n.Attributes[i+1]
		case "class":
			a.class = n.Attributes[i+1]
		}
	}
	if a != (domAttrs{}) {
		into[n.BackendNodeID] = a
	}
	for _, c := range n.Children {
		collectAttrs(c, into)
	}
	for _, c := range n.ShadowRoots {
		collectAttrs(c, into)
	}
	if n.ContentDocument != nil {
		collectAttrs(n.ContentDocument, into)
	}
}

// children 返回未被忽略的子节点，被忽略节点的子节点按顺序提升
func (t *axTree) children(n *proto.AccessibilityAXNode) []*proto.AccessibilityAXNode {
	var out []*proto.AccessibilityAXNode
	for _, id := range n.ChildIDs {
		c, ok := t.nodes[id]
		if !ok {
			continue
		}
		if c.Ignored {
			out = append(out, t.children(c)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (t *axTree) properties(n *proto.AccessibilityAXNode) uia.Properties {
	a := t.attrs[n.BackendDOMNodeID]
	return uia.Properties{
		ControlType:  controlTypeOf(axString(n.Role)),
		AutomationID: a.id,
		Name:         axString(n.Name),
		ClassName:    a.class,
		ProcessID:    t.pid,
	}
}

func axString(v *proto.AccessibilityAXValue) string {
	if v == nil || v.Value.Nil() {
		return ""
	}
	return v.Value.Str()
}

func isSelected(n *proto.AccessibilityAXNode) bool {
	for _, p := range n.Properties {
		if string(p.Name) == "selected" && p.Value != nil {
			return p.Value.Value.Bool()
		}
	}
	return false
}
