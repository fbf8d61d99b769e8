package memtree

import (
	"sync"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// Value 内存中的 ValuePattern 实现
type Value struct {
	mu   sync.Mutex
	text string
	sets int
}

// NewValue 创建带初始文本的 Value
func NewValue(text string) *Value {
	return &Value{text: text}
}

func (v *Value) Value() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text, nil
}

func (v *Value) SetValue(text string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text = text
	v.sets++
	return nil
}

// Sets 返回 SetValue 被调用的次数
func (v *Value) Sets() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sets
}

// Selection 内存中的 SelectionPattern 实现
type Selection struct {
	mu       sync.Mutex
	selected []*Node
}

// NewSelection 创建选中了 items 的 Selection
func NewSelection(items ...*Node) *Selection {
	return &Selection{selected: items}
}

// Select 替换选中项
func (s *Selection) Select(items ...*Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = items
}

func (s *Selection) GetSelection() ([]uia.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uia.Node, len(s.selected))
	for i, n := range s.selected {
		out[i] = n
	}
	return out, nil
}

// Invoker 内存中的 InvokePattern 实现，记录调用次数
type Invoker struct {
	mu    sync.Mutex
	count int
	fn    func() error
}

// NewInvoker 创建 Invoker，fn 可为 nil
func NewInvoker(fn func() error) *Invoker {
	return &Invoker{fn: fn}
}

func (i *Invoker) Invoke() error {
	i.mu.Lock()
	i.count++
	fn := i.fn
	i.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return nil
}

// Count 返回 Invoke 调用次数
func (i *Invoker) Count() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.count
}
