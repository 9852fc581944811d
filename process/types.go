package process

import "fmt"

// ProcessID represents a unique identifier for a process
type ProcessID int

func (pid ProcessID) ToString() string {
	return fmt.Sprintf("%d", int(pid))
}
