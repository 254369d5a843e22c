// Package pidfile enforces that only one daemon instance runs at a time by
// parking the process id in a file. A leftover file from a dead process is
// treated as stale and reclaimed.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile guards a single path holding the owning process id.
type PIDFile struct {
	path string
}

// New creates a guard for the given path without touching the filesystem.
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire claims the file for the current process. It fails when the file
// names a process that is still alive; unreadable or stale files are removed
// and reclaimed.
func (p *PIDFile) Acquire() error {
	if pid, ok := p.currentHolder(); ok {
		if processAlive(pid) {
			return fmt.Errorf("daemon is already running (PID %d)", pid)
		}
		_ = os.Remove(p.path)
	}

	contents := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the file. Releasing an already-removed file is not an error.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// currentHolder reads the pid recorded in the file. A missing or garbled file
// counts as no holder; garbled files are removed on the spot.
func (p *PIDFile) currentHolder() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		_ = os.Remove(p.path)
		return 0, false
	}
	return pid, true
}

// processAlive probes the pid with signal 0, which checks existence without
// delivering anything. EPERM still means the process exists.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
