package native

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeyboard struct {
	activated []int
	events    []string
	activeErr error
}

func (k *fakeKeyboard) Activate(pid int) error {
	k.activated = append(k.activated, pid)
	return k.activeErr
}

func (k *fakeKeyboard) SelectAll()       { k.events = append(k.events, "select-all") }
func (k *fakeKeyboard) Type(text string) { k.events = append(k.events, "type:"+text) }

func (k *fakeKeyboard) Paste(text string) error {
	k.events = append(k.events, "paste:"+text)
	return nil
}

func TestSendTextTypesIntoProcess(t *testing.T) {
	k := &fakeKeyboard{}
	s := New(WithKeyboard(k))

	require.NoError(t, s.SendText(0, 42, "hello"))
	assert.Equal(t, []int{42}, k.activated)
	assert.Equal(t, []string{"select-all", "type:hello"}, k.events)
}

func TestSendTextClipboard(t *testing.T) {
	k := &fakeKeyboard{}
	s := New(WithKeyboard(k), WithClipboard())

	require.NoError(t, s.SendText(0, 42, "你好"))
	assert.Equal(t, []string{"select-all", "paste:你好"}, k.events)
}

func TestSendTextWindowMessageFirst(t *testing.T) {
	k := &fakeKeyboard{}
	s := New(WithKeyboard(k))
	var got []string
	s.setText = func(hwnd int, text string) error {
		got = append(got, text)
		return nil
	}

	require.NoError(t, s.SendText(0x10, 42, "abc"))
	assert.Equal(t, []string{"abc"}, got)
	assert.Empty(t, k.activated, "窗口消息成功后不应再模拟键盘")
}

func TestSendTextWindowMessageFallback(t *testing.T) {
	k := &fakeKeyboard{}
	s := New(WithKeyboard(k))
	s.setText = func(int, string) error { return errNoWindowMessage }

	require.NoError(t, s.SendText(0x10, 7, "abc"))
	assert.Equal(t, []int{7}, k.activated)
}

func TestSendTextErrors(t *testing.T) {
	s := New(WithKeyboard(&fakeKeyboard{}))
	assert.Error(t, s.SendText(0, 0, "x"))

	boom := errors.New("no window")
	s = New(WithKeyboard(&fakeKeyboard{activeErr: boom}))
	err := s.SendText(0, 5, "x")
	assert.ErrorIs(t, err, boom)
}
