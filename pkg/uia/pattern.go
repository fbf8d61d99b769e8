package uia

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// PatternID 能力（Control Pattern）标识
type PatternID int

// 与 Windows UI Automation 的 pattern id 保持一致
const (
	InvokePatternID    PatternID = 10000
	SelectionPatternID PatternID = 10001
	ValuePatternID     PatternID = 10002
)

func (id PatternID) String() string {
	switch id {
	case InvokePatternID:
		return "InvokePattern"
	case SelectionPatternID:
		return "SelectionPattern"
	case ValuePatternID:
		return "ValuePattern"
	default:
		return fmt.Sprintf("Pattern(%d)", int(id))
	}
}

var (
	// ErrPatternNotSupported 节点不支持该能力
	ErrPatternNotSupported = errors.New("控件不支持该 pattern")
	// ErrPatternNotRegistered 能力类型没有注册标识
	ErrPatternNotRegistered = errors.New("pattern 类型未注册")
)

// ValuePattern 可读写文本值的控件
type ValuePattern interface {
	Value() (string, error)
	SetValue(text string) error
}

// SelectionPattern 含可选子项的控件
type SelectionPattern interface {
	GetSelection() ([]Node, error)
}

// InvokePattern 可调用（点击）的控件
type InvokePattern interface {
	Invoke() error
}

var (
	// 能力类型 -> func() PatternID
	patternResolvers sync.Map
	// 能力类型 -> PatternID，首次使用时写入，进程生命周期内不失效
	patternIDs sync.Map
)

func init() {
	RegisterPattern[ValuePattern](func() PatternID { return ValuePatternID })
	RegisterPattern[SelectionPattern](func() PatternID { return SelectionPatternID })
	RegisterPattern[InvokePattern](func() PatternID { return InvokePatternID })
}

// RegisterPattern 注册能力类型 T 的标识解析函数
//
// resolve 只在第一次 GetPattern[T] 时调用，结果被缓存。
func RegisterPattern[T any](resolve func() PatternID) {
	patternResolvers.Store(reflect.TypeFor[T](), resolve)
}

// PatternIDOf 返回能力类型 T 的标识
func PatternIDOf[T any]() (PatternID, error) {
	key := reflect.TypeFor[T]()
	if id, ok := patternIDs.Load(key); ok {
		return id.(PatternID), nil
	}

	resolve, ok := patternResolvers.Load(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPatternNotRegistered, key)
	}

	// 并发首次调用时可能重复计算，结果相同，后写覆盖即可
	id := resolve.(func() PatternID)()
	patternIDs.Store(key, id)
	return id, nil
}

// GetPattern 获取节点对能力 T 的实现
func GetPattern[T any](n Node) (T, error) {
	var zero T

	id, err := PatternIDOf[T]()
	if err != nil {
		return zero, err
	}

	raw, err := n.GetCurrentPattern(id)
	if err != nil {
		return zero, err
	}

	p, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%s 实现类型不匹配: %T", id, raw)
	}
	return p, nil
}

// TryGetPattern 同 GetPattern，但节点不支持该能力时返回 ok=false 而不是错误
func TryGetPattern[T any](n Node) (T, bool, error) {
	p, err := GetPattern[T](n)
	if err != nil {
		if errors.Is(err, ErrPatternNotSupported) {
			return p, false, nil
		}
		return p, false, err
	}
	return p, true, nil
}

// NotSupported 构造节点不支持某能力的错误，供后端实现使用
func NotSupported(id PatternID) error {
	return fmt.Errorf("%w: %s", ErrPatternNotSupported, id)
}
