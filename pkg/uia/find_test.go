package uia_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoeyai/zoeyuia/internal/logger"
	"github.com/zoeyai/zoeyuia/pkg/uia"
	"github.com/zoeyai/zoeyuia/pkg/uia/memtree"
)

func quiet() uia.Option { return uia.WithLogger(logger.NewNop()) }

func button(id, name string) *memtree.Node {
	return memtree.New(uia.Properties{ControlType: uia.Button, AutomationID: id, Name: name})
}

// okCancelDialog 返回 Window -> [Button OK, Button Cancel, Pane -> [Edit input]]
func okCancelDialog() (root, ok, cancel, input *memtree.Node) {
	ok = button("okBtn", "OK")
	cancel = button("cancelBtn", "Cancel")
	input = memtree.New(uia.Properties{ControlType: uia.Edit, AutomationID: "input", ClassName: "TextBox"})
	pane := memtree.New(uia.Properties{ControlType: uia.Pane}, input)
	root = memtree.New(uia.Properties{ControlType: uia.Window, Name: "Dialog"}, ok, cancel, pane)
	return root, ok, cancel, input
}

func TestTryFindByName(t *testing.T) {
	root, _, cancel, _ := okCancelDialog()

	n, err := uia.TryFind(root, uia.Criteria{ControlType: uia.Button, Name: "Cancel"}, uia.ScopeChildren)
	require.NoError(t, err)
	assert.Same(t, cancel, n)
}

func TestTryFindFirstInDocumentOrder(t *testing.T) {
	root, ok, _, _ := okCancelDialog()

	n, err := uia.TryFind(root, uia.Criteria{ControlType: uia.Button}, uia.ScopeChildren)
	require.NoError(t, err)
	assert.Same(t, ok, n)
}

func TestTryFindScope(t *testing.T) {
	root, _, _, input := okCancelDialog()
	c := uia.Criteria{ControlType: uia.Edit, AutomationID: "input"}

	n, err := uia.TryFind(root, c, uia.ScopeChildren)
	require.NoError(t, err)
	assert.Nil(t, n, "孙节点不在直接子节点范围内")

	n, err = uia.TryFind(root, c, uia.ScopeDescendants)
	require.NoError(t, err)
	assert.Same(t, input, n)
}

func TestTryFindMiss(t *testing.T) {
	root, _, _, _ := okCancelDialog()

	n, err := uia.TryFind(root, uia.Criteria{ControlType: uia.CheckBox}, uia.ScopeDescendants)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestTryFindRequiresControlType(t *testing.T) {
	root, _, _, _ := okCancelDialog()

	_, err := uia.TryFind(root, uia.Criteria{Name: "OK"}, uia.ScopeChildren)
	assert.ErrorIs(t, err, uia.ErrInvalidCriteria)
}

func TestFindNotFoundAfterTimeout(t *testing.T) {
	root := memtree.New(uia.Properties{ControlType: uia.Pane})
	const timeout = 300 * time.Millisecond

	start := time.Now()
	n, err := uia.Find(context.Background(), root, uia.Criteria{ControlType: uia.Window}, uia.WithTimeout(timeout), quiet())
	elapsed := time.Since(start)

	assert.Nil(t, n)
	require.ErrorIs(t, err, uia.ErrElementNotAvailable)

	var nf *uia.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uia.Window, nf.Criteria.ControlType)
	assert.Equal(t, timeout, nf.Timeout)
	assert.GreaterOrEqual(t, elapsed, timeout)
}

func TestFindDefaultTimeout(t *testing.T) {
	root := memtree.New(uia.Properties{ControlType: uia.Pane})

	start := time.Now()
	_, err := uia.Find(context.Background(), root, uia.Criteria{ControlType: uia.Button}, quiet())

	require.ErrorIs(t, err, uia.ErrElementNotAvailable)
	assert.GreaterOrEqual(t, time.Since(start), uia.DefaultFindTimeout)
}

func TestFindWaitsForLateElement(t *testing.T) {
	root := memtree.New(uia.Properties{ControlType: uia.Window})
	late := button("late", "稍后出现")

	go func() {
		time.Sleep(100 * time.Millisecond)
		root.Add(late)
	}()

	n, err := uia.Find(context.Background(), root,
		uia.Criteria{ControlType: uia.Button, AutomationID: "late"},
		uia.WithTimeout(2*time.Second), uia.WithInterval(20*time.Millisecond), quiet())
	require.NoError(t, err)
	assert.Same(t, late, n)
}

func TestFindReturnsTreeErrorAfterDeadline(t *testing.T) {
	root := memtree.New(uia.Properties{ControlType: uia.Window})
	errGone := errors.New("element no longer available")
	root.FailWith(errGone)

	_, err := uia.Find(context.Background(), root, uia.Criteria{ControlType: uia.Button},
		uia.WithTimeout(150*time.Millisecond), uia.WithInterval(20*time.Millisecond), quiet())

	require.ErrorIs(t, err, errGone)
	assert.Same(t, errGone, err, "查询错误应原样返回")
	assert.NotErrorIs(t, err, uia.ErrElementNotAvailable, "查询错误不应被翻译为 NotFound")
}

func TestFindSwallowsTransientErrors(t *testing.T) {
	root := memtree.New(uia.Properties{ControlType: uia.Window})
	root.FailWith(errors.New("tree busy"))
	target := button("b", "B")

	go func() {
		time.Sleep(80 * time.Millisecond)
		root.Add(target)
		root.FailWith(nil)
	}()

	n, err := uia.Find(context.Background(), root, uia.Criteria{ControlType: uia.Button},
		uia.WithTimeout(time.Second), uia.WithInterval(20*time.Millisecond), quiet())
	require.NoError(t, err)
	assert.Same(t, target, n)
}

func TestFindDetachedChildIsStale(t *testing.T) {
	root, _, cancel, _ := okCancelDialog()
	root.Remove(cancel)

	_, err := cancel.Properties()
	assert.ErrorIs(t, err, memtree.ErrDetached)

	n, err := uia.TryFind(root, uia.Criteria{ControlType: uia.Button, Name: "Cancel"}, uia.ScopeChildren)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestFindAll(t *testing.T) {
	root, ok, cancel, _ := okCancelDialog()

	all, err := uia.FindAll(root, uia.Criteria{ControlType: uia.Button}, uia.ScopeDescendants)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Same(t, ok, all[0])
	assert.Same(t, cancel, all[1])
}

func TestFirstChild(t *testing.T) {
	root, ok, _, _ := okCancelDialog()

	n, err := uia.FirstChild(root)
	require.NoError(t, err)
	assert.Same(t, ok, n)

	n, err = uia.FirstChild(memtree.New(uia.Properties{ControlType: uia.Pane}))
	require.NoError(t, err)
	assert.Nil(t, n)
}
