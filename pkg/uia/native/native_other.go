//go:build !windows

package native

func setWindowText(hwnd int, text string) error {
	return errNoWindowMessage
}
