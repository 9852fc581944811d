//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"gopeek/process"

	gops "github.com/shirou/gopsutil/v4/process"
)

// Candidate is a process whose name matched a lookup
type Candidate struct {
	PID  process.ProcessID
	Name string // comm, or exe basename when that is what matched
}

// ListByName returns every process whose name or executable basename equals
// name, ordered by PID. Matching is case-sensitive, like pidof.
func ListByName(name string) ([]Candidate, error) {
	if name == "" {
		return nil, errors.New("empty name")
	}

	procs, err := gops.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var out []Candidate
	for _, p := range procs {
		// Processes can exit between listing and inspection; skip on error.
		if comm, err := p.Name(); err == nil && comm == name {
			out = append(out, Candidate{PID: process.ProcessID(p.Pid), Name: comm})
			continue
		}

		exe, err := p.Exe()
		if err != nil || exe == "" {
			continue
		}
		if filepath.Base(exe) == name {
			out = append(out, Candidate{PID: process.ProcessID(p.Pid), Name: filepath.Base(exe)})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].PID < out[j].PID
	})

	return out, nil
}

// ResolveName returns the lowest PID whose process matches name.
func ResolveName(name string) (process.ProcessID, error) {
	candidates, err := ListByName(name)
	if err != nil {
		return 0, &process.ResolutionError{Name: name, Err: err}
	}
	if len(candidates) == 0 {
		return 0, &process.ResolutionError{Name: name}
	}
	return candidates[0].PID, nil
}

// NewWithName resolves name to a process and opens it
func NewWithName(name string) (*LinuxProcess, error) {
	pid, err := ResolveName(name)
	if err != nil {
		return nil, err
	}
	return NewWithPID(pid)
}
