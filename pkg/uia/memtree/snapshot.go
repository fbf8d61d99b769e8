package memtree

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// Snapshot 可序列化的树快照
type Snapshot struct {
	ControlType        string     `json:"control_type"`
	AutomationID       string     `json:"automation_id,omitempty"`
	Name               string     `json:"name,omitempty"`
	ClassName          string     `json:"class_name,omitempty"`
	ProcessID          int        `json:"process_id,omitempty"`
	NativeWindowHandle int        `json:"native_window_handle,omitempty"`
	Patterns           []string   `json:"patterns,omitempty"`
	Value              string     `json:"value,omitempty"`
	Selection          []Snapshot `json:"selection,omitempty"`
	Children           []Snapshot `json:"children,omitempty"`
	// Truncated 超出抓取深度，子节点未展开
	Truncated bool `json:"truncated,omitempty"`
}

// Properties 转换为属性快照，未知控件类型返回 uia.Unknown
func (s Snapshot) Properties() uia.Properties {
	ct, _ := uia.ParseControlType(s.ControlType)
	return uia.Properties{
		ControlType:        ct,
		AutomationID:       s.AutomationID,
		Name:               s.Name,
		ClassName:          s.ClassName,
		ProcessID:          s.ProcessID,
		NativeWindowHandle: s.NativeWindowHandle,
	}
}

// Supports 快照中是否声明支持某能力
func (s Snapshot) Supports(id uia.PatternID) bool {
	for _, p := range s.Patterns {
		if p == id.String() {
			return true
		}
	}
	return false
}

// FromSnapshot 由快照构造内存树
//
// 声明了 ValuePattern 的节点获得一个以 Value 为初值的 *Value；
// 声明了 InvokePattern 的节点获得一个 *Invoker；
// 声明了 SelectionPattern 的节点以 Selection 中的快照作为选中项。
func FromSnapshot(s Snapshot) *Node {
	n := New(s.Properties())
	if s.Supports(uia.ValuePatternID) {
		n.SetPattern(uia.ValuePatternID, NewValue(s.Value))
	}
	if s.Supports(uia.SelectionPatternID) {
		items := make([]*Node, 0, len(s.Selection))
		for _, item := range s.Selection {
			items = append(items, FromSnapshot(item))
		}
		n.SetPattern(uia.SelectionPatternID, NewSelection(items...))
	}
	if s.Supports(uia.InvokePatternID) {
		n.SetPattern(uia.InvokePatternID, NewInvoker(nil))
	}
	for _, c := range s.Children {
		n.Add(FromSnapshot(c))
	}
	return n
}

// Capture 读取任意 uia.Node 的当前子树，生成快照
func Capture(root uia.Node) (Snapshot, error) {
	p, err := root.Properties()
	if err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		ControlType:        p.ControlType.String(),
		AutomationID:       p.AutomationID,
		Name:               p.Name,
		ClassName:          p.ClassName,
		ProcessID:          p.ProcessID,
		NativeWindowHandle: p.NativeWindowHandle,
	}
	for _, id := range []uia.PatternID{uia.InvokePatternID, uia.SelectionPatternID, uia.ValuePatternID} {
		impl, err := root.GetCurrentPattern(id)
		if err != nil {
			continue
		}
		s.Patterns = append(s.Patterns, id.String())
		switch p := impl.(type) {
		case uia.ValuePattern:
			s.Value, _ = p.Value()
		case uia.SelectionPattern:
			items, _ := p.GetSelection()
			for _, item := range items {
				ip, err := item.Properties()
				if err != nil {
					continue
				}
				s.Selection = append(s.Selection, Snapshot{
					ControlType:  ip.ControlType.String(),
					AutomationID: ip.AutomationID,
					Name:         ip.Name,
					ClassName:    ip.ClassName,
					ProcessID:    ip.ProcessID,
				})
			}
		}
	}

	children, err := root.Children()
	if err != nil {
		return Snapshot{}, err
	}
	for _, c := range children {
		cs, err := Capture(c)
		if err != nil {
			return Snapshot{}, err
		}
		s.Children = append(s.Children, cs)
	}
	return s, nil
}

// LoadFile 从 JSON 文件读取快照
func LoadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("读取快照文件失败: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("解析快照文件失败: %w", err)
	}
	return s, nil
}
