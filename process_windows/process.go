//go:build windows

package process_windows

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gopeek/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"
)

// WindowsProcess implements process.Handle for Windows. Handles obtained with
// NewWithPID own a kernel handle that is closed exactly once; the pseudo
// handle returned by Current needs no release.
type WindowsProcess struct {
	pid     process.ProcessID
	handle  windows.Handle
	owned   bool
	log     *logger.Logger
	mu      sync.Mutex
	cleanup runtime.Cleanup
}

var _ process.Handle = (*WindowsProcess)(nil)

// CurrentID returns the process ID of the calling process
func CurrentID() process.ProcessID {
	return process.ProcessID(windows.GetCurrentProcessId())
}

// Current returns a handle for the calling process
func Current() *WindowsProcess {
	pid := CurrentID()
	return &WindowsProcess{
		pid:    pid,
		handle: windows.CurrentProcess(),
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
}

// NewWithPID opens pid with PROCESS_VM_READ, the only right reads need
func NewWithPID(pid process.ProcessID) (*WindowsProcess, error) {
	if pid < 0 {
		return nil, &process.AcquireError{PID: pid, Err: windows.ERROR_INVALID_PARAMETER}
	}

	h, err := windows.OpenProcess(windows.PROCESS_VM_READ, false, uint32(pid))
	if err != nil {
		return nil, &process.AcquireError{PID: pid, Err: fmt.Errorf("OpenProcess: %w", err)}
	}

	p := &WindowsProcess{
		pid:    pid,
		handle: h,
		owned:  true,
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}

	// Release the kernel handle if the owner forgets to call Close.
	p.cleanup = runtime.AddCleanup(p, func(h windows.Handle) {
		windows.CloseHandle(h)
	}, h)

	p.log.Debugln("Process opened")
	return p, nil
}

// PID returns the process ID
func (p *WindowsProcess) PID() process.ProcessID {
	return p.pid
}

func (p *WindowsProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == 0 {
		return nil
	}

	h := p.handle
	p.handle = 0

	if !p.owned {
		return nil
	}

	p.cleanup.Stop()
	if err := windows.CloseHandle(h); err != nil {
		p.log.Warn("CloseHandle failed: ", err)
		return fmt.Errorf("CloseHandle failed: %w", err)
	}

	p.log.Debugln("Process closed")
	return nil
}

// ReadMemory reads len(dst) bytes from the process at addr into dst.
// ERROR_PARTIAL_COPY with a non-zero count is reported as a partial read.
func (p *WindowsProcess) ReadMemory(addr process.ProcessMemoryAddress, dst []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == 0 {
		return 0, process.NewReadError(addr, len(dst), process.ErrProcessNotOpen)
	}

	if len(dst) == 0 {
		return 0, nil
	}

	var bytesRead uintptr
	err := windows.ReadProcessMemory(p.handle, uintptr(addr), &dst[0], uintptr(len(dst)), &bytesRead)
	if err != nil {
		if errors.Is(err, windows.ERROR_PARTIAL_COPY) && bytesRead > 0 {
			p.log.Debugln("partial read at", addr.ToString(), bytesRead, "of", len(dst), "bytes")
			return int(bytesRead), nil
		}
		return 0, process.NewReadError(addr, len(dst), fmt.Errorf("ReadProcessMemory: %w", err))
	}

	return int(bytesRead), nil
}
