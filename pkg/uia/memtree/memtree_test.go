package memtree

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		ControlType: "Window",
		Name:        "登录",
		ProcessID:   4321,
		Children: []Snapshot{
			{ControlType: "Edit", AutomationID: "user", Patterns: []string{"ValuePattern"}, Value: "admin"},
			{ControlType: "Button", AutomationID: "login", Name: "登录", Patterns: []string{"InvokePattern"}},
			{ControlType: "List", AutomationID: "role", Patterns: []string{"SelectionPattern"},
				Selection: []Snapshot{{ControlType: "ListItem", Name: "管理员"}}},
		},
	}
}

func TestFromSnapshotCapture(t *testing.T) {
	snap := sampleSnapshot()
	root := FromSnapshot(snap)

	got, err := Capture(root)
	require.NoError(t, err)
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Errorf("快照不一致 (-want +got):\n%s", diff)
	}
}

func TestFromSnapshotPatterns(t *testing.T) {
	root := FromSnapshot(sampleSnapshot())

	edit, err := uia.TryFind(root, uia.Criteria{ControlType: uia.Edit, AutomationID: "user"}, uia.ScopeChildren)
	require.NoError(t, err)
	require.NotNil(t, edit)

	require.NoError(t, uia.SetText(edit, "guest"))
	vp, err := uia.GetPattern[uia.ValuePattern](edit)
	require.NoError(t, err)
	v, _ := vp.Value()
	assert.Equal(t, "guest", v)

	btn, err := uia.TryFind(root, uia.Criteria{ControlType: uia.Button, Name: "登录"}, uia.ScopeChildren)
	require.NoError(t, err)
	require.NoError(t, uia.Invoke(btn))

	list, err := uia.TryFind(root, uia.Criteria{ControlType: uia.List, AutomationID: "role"}, uia.ScopeChildren)
	require.NoError(t, err)
	text, err := uia.GetSelectionText(list)
	require.NoError(t, err)
	assert.Equal(t, "管理员", text)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	data, err := json.Marshal(sampleSnapshot())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	snap, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "登录", snap.Name)
	assert.Len(t, snap.Children, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRemoveAndReadd(t *testing.T) {
	child := New(uia.Properties{ControlType: uia.Button})
	parent := New(uia.Properties{ControlType: uia.Pane}, child)

	p, err := uia.Parent(child)
	require.NoError(t, err)
	assert.Same(t, parent, p)
	parent.Remove(child)
	_, err = uia.Parent(child)
	assert.ErrorIs(t, err, ErrDetached)
	_, err = child.Children()
	assert.ErrorIs(t, err, ErrDetached)

	parent.Add(child)
	_, err = child.Children()
	assert.NoError(t, err)
	p, err = uia.Parent(child)
	require.NoError(t, err)
	assert.Same(t, parent, p)

	// 根节点没有父节点
	p, err = uia.Parent(parent)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestBackendRoot(t *testing.T) {
	_, err := NewBackend(nil).Root()
	assert.Error(t, err)

	desktop := New(uia.Properties{ControlType: uia.Pane})
	root, err := NewBackend(desktop).Root()
	require.NoError(t, err)
	assert.Same(t, desktop, root)
}
