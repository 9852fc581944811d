//go:build linux

package peek

import (
	"gopeek/process"
	"gopeek/process_linux"
)

func currentID() process.ProcessID {
	return process_linux.CurrentID()
}

func currentHandle() process.Handle {
	return process_linux.Current()
}

func openPID(pid process.ProcessID) (process.Handle, error) {
	return process_linux.NewWithPID(pid)
}

func openTarget(name string) (process.Handle, error) {
	return process_linux.NewWithName(name)
}
