package uia

import "strings"

// ControlType 控件类型
type ControlType int

const (
	Unknown ControlType = iota
	Button
	Calendar
	CheckBox
	ComboBox
	Custom
	DataGrid
	DataItem
	Document
	Edit
	Group
	Header
	HeaderItem
	Hyperlink
	Image
	List
	ListItem
	Menu
	MenuBar
	MenuItem
	Pane
	ProgressBar
	RadioButton
	ScrollBar
	Separator
	Slider
	Spinner
	SplitButton
	StatusBar
	Tab
	TabItem
	Table
	Text
	Thumb
	TitleBar
	ToolBar
	ToolTip
	Tree
	TreeItem
	Window
)

var controlTypeNames = [...]string{
	Unknown:     "Unknown",
	Button:      "Button",
	Calendar:    "Calendar",
	CheckBox:    "CheckBox",
	ComboBox:    "ComboBox",
	Custom:      "Custom",
	DataGrid:    "DataGrid",
	DataItem:    "DataItem",
	Document:    "Document",
	Edit:        "Edit",
	Group:       "Group",
	Header:      "Header",
	HeaderItem:  "HeaderItem",
	Hyperlink:   "Hyperlink",
	Image:       "Image",
	List:        "List",
	ListItem:    "ListItem",
	Menu:        "Menu",
	MenuBar:     "MenuBar",
	MenuItem:    "MenuItem",
	Pane:        "Pane",
	ProgressBar: "ProgressBar",
	RadioButton: "RadioButton",
	ScrollBar:   "ScrollBar",
	Separator:   "Separator",
	Slider:      "Slider",
	Spinner:     "Spinner",
	SplitButton: "SplitButton",
	StatusBar:   "StatusBar",
	Tab:         "Tab",
	TabItem:     "TabItem",
	Table:       "Table",
	Text:        "Text",
	Thumb:       "Thumb",
	TitleBar:    "TitleBar",
	ToolBar:     "ToolBar",
	ToolTip:     "ToolTip",
	Tree:        "Tree",
	TreeItem:    "TreeItem",
	Window:      "Window",
}

func (c ControlType) String() string {
	if c < 0 || int(c) >= len(controlTypeNames) {
		return "Unknown"
	}
	return controlTypeNames[c]
}

// ProgrammaticName 返回 "ControlType.Button" 形式的名称
func (c ControlType) ProgrammaticName() string {
	return "ControlType." + c.String()
}

// ParseControlType 解析控件类型名称（不区分大小写，可带 "ControlType." 前缀）
func ParseControlType(s string) (ControlType, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "ControlType.")
	for i, name := range controlTypeNames {
		if strings.EqualFold(name, s) {
			return ControlType(i), true
		}
	}
	return Unknown, false
}
