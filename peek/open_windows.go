//go:build windows

package peek

import (
	"gopeek/process"
	"gopeek/process_windows"
)

func currentID() process.ProcessID {
	return process_windows.CurrentID()
}

func currentHandle() process.Handle {
	return process_windows.Current()
}

func openPID(pid process.ProcessID) (process.Handle, error) {
	return process_windows.NewWithPID(pid)
}

func openTarget(name string) (process.Handle, error) {
	return process_windows.NewWithWindow(name)
}
