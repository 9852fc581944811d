//go:build windows

package process_windows

import (
	"errors"
	"fmt"
	"unsafe"

	"gopeek/process"

	"golang.org/x/sys/windows"
)

var (
	moduser32       = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW = moduser32.NewProc("FindWindowW")
)

// findWindow returns the top-level window whose title equals title, or 0
func findWindow(title string) (windows.HWND, error) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	return windows.HWND(hwnd), nil
}

// ResolveWindow returns the process that owns the window titled title
func ResolveWindow(title string) (process.ProcessID, error) {
	if title == "" {
		return 0, &process.ResolutionError{Name: title, Err: errors.New("empty window title")}
	}

	hwnd, err := findWindow(title)
	if err != nil {
		return 0, &process.ResolutionError{Name: title, Err: err}
	}
	if hwnd == 0 {
		return 0, &process.ResolutionError{Name: title}
	}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return 0, &process.ResolutionError{Name: title, Err: fmt.Errorf("GetWindowThreadProcessId: %w", err)}
	}
	if pid == 0 {
		return 0, &process.ResolutionError{Name: title}
	}

	return process.ProcessID(pid), nil
}

// NewWithWindow resolves the window titled title and opens its process
func NewWithWindow(title string) (*WindowsProcess, error) {
	pid, err := ResolveWindow(title)
	if err != nil {
		return nil, err
	}
	return NewWithPID(pid)
}
