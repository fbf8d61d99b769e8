package uia

import (
	"fmt"
	"strings"
)

// Property 可用于过滤的节点属性
type Property int

const (
	PropertyControlType Property = iota
	PropertyProcessID
	PropertyAutomationID
	PropertyName
	PropertyClassName
)

func (p Property) String() string {
	switch p {
	case PropertyControlType:
		return "ControlType"
	case PropertyProcessID:
		return "ProcessId"
	case PropertyAutomationID:
		return "AutomationId"
	case PropertyName:
		return "Name"
	case PropertyClassName:
		return "ClassName"
	default:
		return "Unknown"
	}
}

// Get 读取快照中的某个属性值
func (p Properties) Get(prop Property) any {
	switch prop {
	case PropertyControlType:
		return p.ControlType
	case PropertyProcessID:
		return p.ProcessID
	case PropertyAutomationID:
		return p.AutomationID
	case PropertyName:
		return p.Name
	case PropertyClassName:
		return p.ClassName
	default:
		return nil
	}
}

// Condition 针对属性快照的过滤条件
type Condition interface {
	Match(p Properties) bool
	String() string
}

// PropertyCondition 单个属性的相等判断
type PropertyCondition struct {
	Property Property
	Value    any
}

func (c PropertyCondition) Match(p Properties) bool {
	return p.Get(c.Property) == c.Value
}

func (c PropertyCondition) String() string {
	if s, ok := c.Value.(string); ok {
		return fmt.Sprintf("%s=%q", c.Property, s)
	}
	return fmt.Sprintf("%s=%v", c.Property, c.Value)
}

// AndCondition 所有子条件同时成立
type AndCondition struct {
	Conditions []Condition
}

func (c AndCondition) Match(p Properties) bool {
	for _, sub := range c.Conditions {
		if !sub.Match(p) {
			return false
		}
	}
	return true
}

func (c AndCondition) String() string {
	parts := make([]string, len(c.Conditions))
	for i, sub := range c.Conditions {
		parts[i] = sub.String()
	}
	return strings.Join(parts, " && ")
}

type trueCondition struct{}

func (trueCondition) Match(Properties) bool { return true }
func (trueCondition) String() string        { return "true" }

// TrueCondition 匹配任意节点
var TrueCondition Condition = trueCondition{}

// Criteria 控件查找条件
//
// ControlType 必填；其余字段为空字符串或 0 时不参与过滤。
type Criteria struct {
	ControlType  ControlType
	AutomationID string
	Name         string
	ClassName    string
	ProcessID    int
}

func (c Criteria) String() string {
	return BuildCondition(c).String()
}

// BuildCondition 根据查找条件构造过滤条件
//
// 只有控件类型时返回单个 PropertyCondition；否则返回 AndCondition，
// 子条件顺序固定为 ControlType, ProcessId, AutomationId, Name, ClassName。
func BuildCondition(c Criteria) Condition {
	typeCond := PropertyCondition{Property: PropertyControlType, Value: c.ControlType}
	if c.AutomationID == "" && c.Name == "" && c.ClassName == "" && c.ProcessID == 0 {
		return typeCond
	}

	conds := []Condition{typeCond}
	if c.ProcessID != 0 {
		conds = append(conds, PropertyCondition{Property: PropertyProcessID, Value: c.ProcessID})
	}
	if c.AutomationID != "" {
		conds = append(conds, PropertyCondition{Property: PropertyAutomationID, Value: c.AutomationID})
	}
	if c.Name != "" {
		conds = append(conds, PropertyCondition{Property: PropertyName, Value: c.Name})
	}
	if c.ClassName != "" {
		conds = append(conds, PropertyCondition{Property: PropertyClassName, Value: c.ClassName})
	}
	return AndCondition{Conditions: conds}
}
