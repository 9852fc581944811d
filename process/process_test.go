package process

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadErrorExtractsErrno(t *testing.T) {
	err := NewReadError(0x1000, 8, fmt.Errorf("process_vm_readv: %w", syscall.EFAULT))

	assert.Equal(t, syscall.EFAULT, err.Errno)
	assert.ErrorIs(t, err, syscall.EFAULT)
	assert.Contains(t, err.Error(), "0x1000")
	assert.Contains(t, err.Error(), "errno")
}

func TestNewReadErrorWithoutErrno(t *testing.T) {
	err := NewReadError(0x10, 4, errors.New("boom"))

	assert.Zero(t, err.Errno)
	assert.Contains(t, err.Error(), "boom")
}

func TestPartialReadError(t *testing.T) {
	var err error = NewPartialReadError(0x2000, 32, 10)

	assert.ErrorIs(t, err, ErrPartialRead)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, 10, readErr.Read)
	assert.Equal(t, 32, readErr.Size)
	assert.Equal(t, "read 32 bytes at 0x2000: partial read (10 read)", err.Error())
}

func TestAcquireError(t *testing.T) {
	var err error = &AcquireError{PID: 42, Err: syscall.ESRCH}

	assert.ErrorIs(t, err, syscall.ESRCH)
	assert.Contains(t, err.Error(), "42")
}

func TestResolutionError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ResolutionError
		notFound bool
	}{
		{name: "no match", err: &ResolutionError{Name: "game"}, notFound: true},
		{name: "lookup failed", err: &ResolutionError{Name: "game", Err: errors.New("list processes: denied")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, errors.Is(tt.err, ErrTargetNotFound))
			assert.Contains(t, tt.err.Error(), `"game"`)
		})
	}
}

func TestAddressFormatting(t *testing.T) {
	assert.Equal(t, "0x7FFE1000", ProcessMemoryAddress(0x7ffe1000).ToString())
	assert.Equal(t, ProcessMemoryAddress(0x1020), ProcessMemoryAddress(0x1000).Add(0x20))
	assert.Equal(t, "64 bytes", ProcessMemorySize(64).ToString())
	assert.Equal(t, "1234", ProcessID(1234).ToString())
}
