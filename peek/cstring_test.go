package peek

import (
	"bytes"
	"syscall"
	"testing"

	"gopeek/process"
	"gopeek/process_blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blobBase = process.ProcessMemoryAddress(0x10000)

func blobReader(data []byte, opts ...Option) *Reader {
	return New(process_blob.NewProcessBlob(blobBase, data), opts...)
}

// scriptedHandle serves reads from a blob until failAfter reads have
// completed, then fails every read with EIO.
type scriptedHandle struct {
	*process_blob.ProcessBlob
	reads     int
	failAfter int
	requests  []int
}

func (h *scriptedHandle) ReadMemory(addr process.ProcessMemoryAddress, dst []byte) (int, error) {
	h.requests = append(h.requests, len(dst))
	if h.reads >= h.failAfter {
		return 0, process.NewReadError(addr, len(dst), syscall.EIO)
	}
	h.reads++
	return h.ProcessBlob.ReadMemory(addr, dst)
}

func TestScanCStringStopsOnPartialRead(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "shorter than one chunk", data: []byte("abc")},
		{name: "spans chunks", data: bytes.Repeat([]byte{'y'}, DefaultChunkSize+8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := blobReader(tt.data)

			s, err := r.ScanCString(blobBase)
			require.NoError(t, err)
			assert.Equal(t, tt.data, s.Bytes)
			assert.False(t, s.Terminated)

			got, err := r.PeekCString(blobBase)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestScanCStringExactChunkReadsNextChunk(t *testing.T) {
	// A full chunk with no terminator must be followed by another read, which
	// here starts past the end of the blob and fails.
	data := bytes.Repeat([]byte{'z'}, DefaultChunkSize)
	h := &scriptedHandle{ProcessBlob: process_blob.NewProcessBlob(blobBase, data), failAfter: 10}
	r := New(h)

	_, err := r.ScanCString(blobBase)
	var readErr *process.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, blobBase.Add(DefaultChunkSize), readErr.Addr)
}

func TestScanCStringTerminatorOnChunkBoundary(t *testing.T) {
	data := append(bytes.Repeat([]byte{'q'}, DefaultChunkSize), 0, 'r', 'r')
	r := blobReader(data)

	s, err := r.ScanCString(blobBase)
	require.NoError(t, err)
	assert.True(t, s.Terminated)
	assert.Equal(t, data[:DefaultChunkSize], s.Bytes)
}

func TestScanCStringDiscardsOnReadError(t *testing.T) {
	data := bytes.Repeat([]byte{'w'}, 3*DefaultChunkSize)
	h := &scriptedHandle{ProcessBlob: process_blob.NewProcessBlob(blobBase, data), failAfter: 2}
	r := New(h)

	got, err := r.PeekCString(blobBase)
	assert.Nil(t, got)

	var readErr *process.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, syscall.EIO, readErr.Errno)
	assert.Equal(t, blobBase.Add(2*DefaultChunkSize), readErr.Addr)
	assert.Equal(t, []int{DefaultChunkSize, DefaultChunkSize, DefaultChunkSize}, h.requests)
}

func TestScanCStringMaxLength(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		max        int
		want       string
		terminated bool
	}{
		{name: "bound hit", data: []byte("abcdefghijklmnopqrstuvwxyz\x00"), max: 10, want: "abcdefghij"},
		{name: "terminator first", data: []byte("abc\x00defghijkl"), max: 10, want: "abc", terminated: true},
		{name: "terminator at bound", data: []byte("abcdefghij\x00"), max: 10, want: "abcdefghij"},
		{name: "bound across chunks", data: bytes.Repeat([]byte{'m'}, 100), max: 70, want: string(bytes.Repeat([]byte{'m'}, 70))},
		{name: "unbounded", data: []byte("abcdefghij\x00"), max: 0, want: "abcdefghij", terminated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := blobReader(tt.data, WithMaxCString(tt.max))

			s, err := r.ScanCString(blobBase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(s.Bytes))
			assert.Equal(t, tt.terminated, s.Terminated)
		})
	}
}

func TestScanCStringAdvancesByBytesRead(t *testing.T) {
	data := append(bytes.Repeat([]byte{'k'}, 10), 0)
	h := &scriptedHandle{ProcessBlob: process_blob.NewProcessBlob(blobBase, data), failAfter: 10}
	r := New(h, WithChunkSize(4))

	got, err := r.PeekCString(blobBase)
	require.NoError(t, err)
	assert.Equal(t, "kkkkkkkkkk", string(got))
	assert.Equal(t, []int{4, 4, 4}, h.requests)
}

func TestPeekIntoPartialIsError(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	r := blobReader(data)

	got, err := r.PeekInto(blobBase.Add(4), make([]byte, 0, 16))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, process.ErrPartialRead)

	var readErr *process.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, 4, readErr.Read)
	assert.Equal(t, 16, readErr.Size)
	assert.Zero(t, readErr.Errno)
}

func TestPeekValuePartialIsError(t *testing.T) {
	r := blobReader([]byte{0xff, 0xff, 0xff})

	got, err := PeekValue[uint32](r, blobBase)
	assert.ErrorIs(t, err, process.ErrPartialRead)
	assert.Zero(t, got)

	got8, err := PeekValue[uint8](r, blobBase.Add(2))
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), got8)
}

func TestReadRawReportsCompleteness(t *testing.T) {
	r := blobReader([]byte("hello"))

	buf := make([]byte, 8)
	n, complete, err := r.ReadRaw(blobBase, buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.False(t, complete)
	assert.Equal(t, "hello", string(buf[:n]))

	n, complete, err = r.ReadRaw(blobBase.Add(1), buf[:4])
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.True(t, complete)

	_, _, err = r.ReadRaw(blobBase.Add(100), buf)
	var readErr *process.ReadError
	assert.ErrorAs(t, err, &readErr)
}
