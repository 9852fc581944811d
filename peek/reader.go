// Package peek reads memory out of a running process.
//
// A Reader owns one process.Handle and offers three read modes on top of the
// handle's raw read: typed values (PeekValue), exact sized buffers (PeekInto)
// and null-terminated byte strings (PeekCString). Reads are synchronous and
// block for as long as the OS call does.
//
//	r, err := peek.FromPID(pid)
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	hp, err := peek.PeekValue[int32](r, addr)
package peek

import (
	"gopeek/process"
)

// DefaultChunkSize is the number of bytes requested per read while scanning
// for a string terminator.
const DefaultChunkSize = 32

// Reader reads memory through the handle it owns. Closing the Reader closes
// the handle.
type Reader struct {
	hdl        process.Handle
	chunkSize  int
	maxCString int
}

// Option configures a Reader
type Option func(*Reader)

// WithChunkSize sets the chunk size used by the string scan. Values below 1
// select DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(r *Reader) {
		if n < 1 {
			n = DefaultChunkSize
		}
		r.chunkSize = n
	}
}

// WithMaxCString bounds the number of bytes a string scan collects. Zero
// means unbounded.
func WithMaxCString(n int) Option {
	return func(r *Reader) {
		if n < 0 {
			n = 0
		}
		r.maxCString = n
	}
}

// New returns a Reader that takes ownership of hdl
func New(hdl process.Handle, opts ...Option) *Reader {
	r := &Reader{
		hdl:       hdl,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PID returns the process ID of the target
func (r *Reader) PID() process.ProcessID {
	return r.hdl.PID()
}

// Close releases the handle
func (r *Reader) Close() error {
	return r.hdl.Close()
}

// ReadRaw reads up to len(dst) bytes at addr into dst. complete reports
// whether all of them arrived; a partial read is not an error.
func (r *Reader) ReadRaw(addr process.ProcessMemoryAddress, dst []byte) (n int, complete bool, err error) {
	n, err = r.hdl.ReadMemory(addr, dst)
	if err != nil {
		return 0, false, err
	}
	return n, n == len(dst), nil
}
