// Package process_blob provides a process.Handle over a captured byte range.
// Reads follow the same rules as the OS handles: a range that starts inside
// the blob but runs off its end is a partial read, a range that starts
// outside it is a read error.
package process_blob

import (
	"fmt"
	"sync/atomic"
	"syscall"

	"gopeek/process"
)

type ProcessBlob struct {
	pid         process.ProcessID
	baseaddress process.ProcessMemoryAddress
	data        []byte
	closed      atomic.Bool
}

var _ process.Handle = (*ProcessBlob)(nil)

// NewProcessBlob returns a handle whose address space is data mapped at baseAddress
func NewProcessBlob(baseAddress process.ProcessMemoryAddress, data []byte) *ProcessBlob {
	return &ProcessBlob{
		baseaddress: baseAddress,
		data:        data,
	}
}

// Capture copies size bytes at addr out of h into a new blob. A partial read
// yields a shorter blob; an outright read failure is returned as is.
func Capture(h process.Handle, addr process.ProcessMemoryAddress, size process.ProcessMemorySize) (*ProcessBlob, error) {
	data := make([]byte, size)
	n, err := h.ReadMemory(addr, data)
	if err != nil {
		return nil, fmt.Errorf("capture %s at %s: %w", size.ToString(), addr.ToString(), err)
	}

	blob := NewProcessBlob(addr, data[:n])
	blob.pid = h.PID()
	return blob, nil
}

// PID returns the process the blob was captured from, zero if it was built directly
func (p *ProcessBlob) PID() process.ProcessID {
	return p.pid
}

// BaseAddress returns the address of the first byte of the blob
func (p *ProcessBlob) BaseAddress() process.ProcessMemoryAddress {
	return p.baseaddress
}

// Data returns the captured bytes
func (p *ProcessBlob) Data() []byte {
	return p.data
}

func (p *ProcessBlob) ReadMemory(addr process.ProcessMemoryAddress, dst []byte) (int, error) {
	if p.closed.Load() {
		return 0, process.NewReadError(addr, len(dst), process.ErrProcessNotOpen)
	}

	if len(dst) == 0 {
		return 0, nil
	}

	end := p.baseaddress + process.ProcessMemoryAddress(len(p.data))
	if addr < p.baseaddress || addr >= end {
		return 0, process.NewReadError(addr, len(dst), syscall.EFAULT)
	}

	offset := uint64(addr - p.baseaddress)
	return copy(dst, p.data[offset:]), nil
}

func (p *ProcessBlob) Close() error {
	p.closed.Store(true)
	return nil
}
