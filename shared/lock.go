package shared

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/shirou/gopsutil/process"
)

// InstanceLock keeps a second copy of the application from running in the same directory.
type InstanceLock struct {
	lock    *flock.Flock
	pidPath string
}

// AcquireInstanceLock takes the lock file in dir and records our PID next to it.
// A PID file left by a process that is no longer running is treated as stale.
func AcquireInstanceLock(dir, name string) (*InstanceLock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	lockPath := filepath.Join(dir, name+".lock")
	pidPath := filepath.Join(dir, name+".pid")

	if pid, ok := readPID(pidPath); ok && pid != os.Getpid() {
		if isProcessRunning(pid) {
			log.Printf("Another instance of %s is already running with PID %d", name, pid)
			return nil, fmt.Errorf("another instance of %s is already running with PID %d", name, pid)
		}
		log.Printf("Stale PID file found (PID %d is not running), removing and proceeding", pid)
		os.Remove(pidPath)
	}

	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("another instance of %s holds %s", name, lockPath)
	}

	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		fl.Unlock()
		return nil, fmt.Errorf("writing PID file: %w", err)
	}
	return &InstanceLock{lock: fl, pidPath: pidPath}, nil
}

// Release unlocks and removes the lock and PID files.
func (l *InstanceLock) Release() {
	if l == nil || l.lock == nil {
		return
	}
	if err := l.lock.Unlock(); err != nil {
		log.Printf("Failed to unlock %s: %v", l.lock.Path(), err)
	}
	os.Remove(l.lock.Path())
	os.Remove(l.pidPath)
	l.lock = nil
	log.Println("Released instance lock")
}

func readPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		log.Printf("Failed to parse PID from PID file %s: %v", path, err)
		return 0, false
	}
	return pid, true
}

func isProcessRunning(pid int) bool {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	return err == nil && running
}
