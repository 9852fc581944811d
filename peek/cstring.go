package peek

import (
	"bytes"

	"gopeek/process"
)

// CString is the result of a null-terminated scan
type CString struct {
	// Bytes holds the string without its terminator
	Bytes []byte

	// Terminated is false when the scan stopped without finding a zero byte,
	// either because the next chunk was only partially readable or because
	// the WithMaxCString bound was reached.
	Terminated bool
}

// ScanCString reads the null-terminated byte string at addr.
//
// Memory is read in chunks of the configured chunk size; the cursor advances
// by the bytes each read actually returned. A chunk that comes back short and
// holds no terminator ends the scan, and whatever was collected is returned
// with Terminated set to false. An OS read error at any chunk discards the
// collected bytes and is returned.
func (r *Reader) ScanCString(addr process.ProcessMemoryAddress) (CString, error) {
	chunk := make([]byte, r.chunkSize)
	out := make([]byte, 0, r.chunkSize)
	cursor := addr

	for {
		want := len(chunk)
		if r.maxCString > 0 {
			remaining := r.maxCString - len(out)
			if remaining <= 0 {
				return CString{Bytes: out}, nil
			}
			want = min(want, remaining)
		}

		n, complete, err := r.ReadRaw(cursor, chunk[:want])
		if err != nil {
			return CString{}, err
		}

		data := chunk[:n]
		if i := bytes.IndexByte(data, 0); i >= 0 {
			return CString{Bytes: append(out, data[:i]...), Terminated: true}, nil
		}

		out = append(out, data...)
		cursor = cursor.Add(n)

		if !complete {
			return CString{Bytes: out}, nil
		}
	}
}

// PeekCString reads the null-terminated byte string at addr and returns it
// without the terminator. Running into unreadable memory before a terminator
// is found is not an error; use ScanCString to tell the two apart.
func (r *Reader) PeekCString(addr process.ProcessMemoryAddress) ([]byte, error) {
	s, err := r.ScanCString(addr)
	if err != nil {
		return nil, err
	}
	return s.Bytes, nil
}
