package peek

import (
	"errors"
	"fmt"

	"gopeek/process"
)

// MaxPeekSize is the largest buffer PeekBytes will allocate
const MaxPeekSize = 1 << 30

// ErrSizeTooLarge is returned when a requested read exceeds MaxPeekSize
var ErrSizeTooLarge = errors.New("size too large")

// PeekInto fills dst[:cap(dst)] with the bytes at addr and returns it. The
// capacity of dst, not its length, is the number of bytes requested. Unlike
// ReadRaw a short read is an error: the result is nil and the error is a
// *process.ReadError wrapping process.ErrPartialRead.
func (r *Reader) PeekInto(addr process.ProcessMemoryAddress, dst []byte) ([]byte, error) {
	buf := dst[:cap(dst)]

	n, complete, err := r.ReadRaw(addr, buf)
	if err != nil {
		return nil, err
	}
	if !complete {
		return nil, process.NewPartialReadError(addr, len(buf), n)
	}

	return buf, nil
}

// PeekBytes reads exactly size bytes at addr into a new slice
func (r *Reader) PeekBytes(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	if uint64(size) > MaxPeekSize {
		return nil, fmt.Errorf("peek %s at %s: %w", size.ToString(), addr.ToString(), ErrSizeTooLarge)
	}
	return r.PeekInto(addr, make([]byte, 0, size))
}
