package uia

import (
	"fmt"
	"iter"
	"strings"
)

// DumpLine 子树列表中的一行
type DumpLine struct {
	Depth      int
	Properties Properties
}

func (l DumpLine) String() string {
	return fmt.Sprintf("%s%s,\tId='%s',\tName='%s'",
		strings.Repeat("\t", l.Depth),
		l.Properties.ControlType.ProgrammaticName(),
		l.Properties.AutomationID,
		l.Properties.Name,
	)
}

// Descendants 惰性地按先序遍历 root 的所有后代
//
// 每次 range 都会重新读取当前的树，出错时产出一次错误后结束。
func Descendants(root Node) iter.Seq2[DumpLine, error] {
	return func(yield func(DumpLine, error) bool) {
		stopped := false
		err := Walk(root, ScopeDescendants, func(_ Node, p Properties, depth int) bool {
			if !yield(DumpLine{Depth: depth, Properties: p}, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(DumpLine{}, err)
		}
	}
}

// DumpDescendants 以缩进文本列出 root 的所有后代，每个节点一行
func DumpDescendants(root Node) (string, error) {
	var sb strings.Builder
	for line, err := range Descendants(root) {
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(line.String())
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
