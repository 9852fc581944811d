package process

// Handle is the capability to read the memory of one target process.
//
// A Handle is valid from construction until Close. Implementations are passed
// around by pointer and must not be copied: a copy would release the same OS
// resource twice.
type Handle interface {
	// PID returns the process ID of the target
	PID() ProcessID

	// ReadMemory copies up to len(dst) bytes starting at addr into dst.
	//
	// n == len(dst) is a full read. n < len(dst) with a nil error is a partial
	// read, typically because the range runs into an unmapped page. When the
	// OS rejects the read outright a *ReadError is returned and nothing in dst
	// is valid. ReadMemory never writes beyond len(dst).
	ReadMemory(addr ProcessMemoryAddress, dst []byte) (n int, err error)

	// Close releases the underlying OS resource. Calling Close more than once
	// is safe; only the first call releases anything.
	Close() error
}
