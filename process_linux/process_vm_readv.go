//go:build linux

package process_linux

import (
	"gopeek/process"

	"golang.org/x/sys/unix"
)

// process_vm_readv copies len(dst) bytes at remoteAddr in pid into dst using
// one local and one remote iovec. A short count with a nil error means the
// remote range ran into memory that could not be read.
func process_vm_readv(pid process.ProcessID, dst []byte, remoteAddr process.ProcessMemoryAddress) (int, error) {
	localIov := []unix.Iovec{
		{Base: &dst[0]},
	}
	localIov[0].SetLen(len(dst))

	remoteIov := []unix.RemoteIovec{
		{
			Base: uintptr(remoteAddr),
			Len:  len(dst),
		},
	}

	return unix.ProcessVMReadv(int(pid), localIov, remoteIov, 0)
}

// ReadMemory reads len(dst) bytes from the process at addr into dst
func (p *LinuxProcess) ReadMemory(addr process.ProcessMemoryAddress, dst []byte) (int, error) {
	if p.closed.Load() {
		return 0, process.NewReadError(addr, len(dst), process.ErrProcessNotOpen)
	}

	if len(dst) == 0 {
		return 0, nil
	}

	n, err := process_vm_readv(p.pid, dst, addr)
	if err != nil {
		return 0, process.NewReadError(addr, len(dst), err)
	}

	if n < len(dst) {
		p.log.Debugln("partial read at", addr.ToString(), n, "of", len(dst), "bytes")
	}

	return n, nil
}
