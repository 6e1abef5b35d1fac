package numa

import (
	"golang.org/x/sys/unix"
)

// ProcessTable answers whether a pid belongs to a running process. It is an
// interface so ledger reclamation can be tested against a fake process table
// instead of live OS process enumeration.
type ProcessTable interface {
	IsAlive(pid int) bool
}

func NewProcessTable() ProcessTable {
	return unixProcessTable{}
}

type unixProcessTable struct{}

// IsAlive probes with signal 0. EPERM means the process exists but belongs
// to someone else, which still counts as alive.
func (unixProcessTable) IsAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}

// InMemoryProcessTable is a fake process table for tests: only pids
// explicitly marked alive are alive.
type InMemoryProcessTable struct {
	alive map[int]bool
}

func NewInMemoryProcessTable(alivePids ...int) *InMemoryProcessTable {
	t := &InMemoryProcessTable{alive: map[int]bool{}}
	for _, pid := range alivePids {
		t.alive[pid] = true
	}
	return t
}

func (t *InMemoryProcessTable) IsAlive(pid int) bool {
	return t.alive[pid]
}

func (t *InMemoryProcessTable) SetAlive(pid int, alive bool) {
	t.alive[pid] = alive
}
