package sandbox

import "sync"

// PathLocks hands out one mutex per resolved sandbox path. It serializes
// directory creation against script appends for sandboxes shared by several
// combinations in compact mode.
type PathLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPathLocks returns an empty lock registry.
func NewPathLocks() *PathLocks {
	return &PathLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for path, creating it on first use, and returns
// the matching unlock function.
func (p *PathLocks) Lock(path string) func() {
	p.mu.Lock()
	l, ok := p.locks[path]
	if !ok {
		l = &sync.Mutex{}
		p.locks[path] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
