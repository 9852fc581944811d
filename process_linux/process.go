//go:build linux

package process_linux

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopeek/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/unix"
)

// LinuxProcess implements process.Handle for Linux. The pid itself is the
// capability, so releasing it only marks the handle closed.
type LinuxProcess struct {
	pid    process.ProcessID
	log    *logger.Logger
	closed atomic.Bool
}

var _ process.Handle = (*LinuxProcess)(nil)

func newLinuxProcess(pid process.ProcessID) *LinuxProcess {
	return &LinuxProcess{
		pid: pid,
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
}

// CurrentID returns the process ID of the calling process
func CurrentID() process.ProcessID {
	return process.ProcessID(os.Getpid())
}

// Current returns a handle for the calling process
func Current() *LinuxProcess {
	return newLinuxProcess(CurrentID())
}

// NewWithPID returns a handle for pid after checking that the caller is
// allowed to read its memory.
func NewWithPID(pid process.ProcessID) (*LinuxProcess, error) {
	if pid <= 0 {
		return nil, &process.AcquireError{PID: pid, Err: unix.ESRCH}
	}

	if err := probeAccess(pid); err != nil {
		return nil, &process.AcquireError{PID: pid, Err: err}
	}

	p := newLinuxProcess(pid)
	p.log.Debugln("Process opened")
	return p, nil
}

// probeAccess opens /proc/<pid>/mem read-only. The kernel applies the same
// ptrace access check to that open as it does to process_vm_readv, so a
// successful open means reads will be permitted. The descriptor is closed
// before returning.
func probeAccess(pid process.ProcessID) error {
	fd, err := unix.Open(fmt.Sprintf("/proc/%d/mem", pid), unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open /proc/%d/mem: %w", pid, err)
	}
	return unix.Close(fd)
}

// PID returns the process ID
func (p *LinuxProcess) PID() process.ProcessID {
	return p.pid
}

func (p *LinuxProcess) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.log.Debugln("Process closed")
	return nil
}
