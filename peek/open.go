package peek

import (
	"gopeek/process"
)

// CurrentID returns the process ID of the calling process
func CurrentID() process.ProcessID {
	return currentID()
}

// Current returns a Reader over the calling process. It cannot fail.
func Current(opts ...Option) *Reader {
	return New(currentHandle(), opts...)
}

// FromPID opens pid for reading. The error is a *process.AcquireError when
// the process does not exist or access is denied.
func FromPID(pid process.ProcessID, opts ...Option) (*Reader, error) {
	hdl, err := openPID(pid)
	if err != nil {
		return nil, err
	}
	return New(hdl, opts...), nil
}

// FromTargetName resolves name to a process and opens it. On Linux name is
// matched against process names and executable basenames, on Windows against
// top-level window titles. A name that matches nothing yields a
// *process.ResolutionError.
func FromTargetName(name string, opts ...Option) (*Reader, error) {
	hdl, err := openTarget(name)
	if err != nil {
		return nil, err
	}
	return New(hdl, opts...), nil
}
