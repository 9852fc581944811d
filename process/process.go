// Package process defines the handle abstraction and error taxonomy shared by
// the platform specific process packages.
package process

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrProcessNotOpen is wrapped in the ReadError returned when a handle is
	// read after it has been closed.
	ErrProcessNotOpen = errors.New("process not open")

	// ErrPartialRead marks a read that returned fewer bytes than requested
	// where the caller required all of them.
	ErrPartialRead = errors.New("partial read")

	// ErrTargetNotFound is returned when a target name does not resolve to a process.
	ErrTargetNotFound = errors.New("target not found")

	// ErrNotPlainData is returned for typed reads into types that contain Go pointers.
	ErrNotPlainData = errors.New("type is not plain data")
)

// AcquireError is returned when a handle for a process cannot be obtained,
// either because the process does not exist or because access was denied.
type AcquireError struct {
	PID ProcessID
	Err error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquire process %d: %v", e.PID, e.Err)
}

func (e *AcquireError) Unwrap() error {
	return e.Err
}

// ResolutionError is returned when a platform specific target lookup
// (process name, window title) matches nothing.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("resolve target %q: %v", e.Name, ErrTargetNotFound)
	}
	return fmt.Sprintf("resolve target %q: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	if e.Err == nil {
		return ErrTargetNotFound
	}
	return e.Err
}

// ReadError describes a failed read. Errno carries the platform error code
// when the OS rejected the read; it is zero when a partial read was promoted
// to an error, in which case Read holds the number of bytes that did arrive.
type ReadError struct {
	Addr  ProcessMemoryAddress
	Size  int
	Read  int
	Errno syscall.Errno
	Err   error
}

func (e *ReadError) Error() string {
	if e.Errno != 0 {
		return fmt.Sprintf("read %d bytes at %s: %v (errno: %d)", e.Size, e.Addr.ToString(), e.Err, uintptr(e.Errno))
	}
	return fmt.Sprintf("read %d bytes at %s: %v (%d read)", e.Size, e.Addr.ToString(), e.Err, e.Read)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError wraps an OS error returned by a read call. The errno is
// extracted when err is (or wraps) a syscall.Errno.
func NewReadError(addr ProcessMemoryAddress, size int, err error) *ReadError {
	re := &ReadError{Addr: addr, Size: size, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		re.Errno = errno
	}
	return re
}

// NewPartialReadError promotes a short read to an error.
func NewPartialReadError(addr ProcessMemoryAddress, size, read int) *ReadError {
	return &ReadError{Addr: addr, Size: size, Read: read, Err: ErrPartialRead}
}
