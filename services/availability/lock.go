package availability

import "sync"

// doctorLocks hands out one mutex per doctor ID so availability
// read-modify-write cycles for the same calendar never interleave.
type doctorLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDoctorLocks() *doctorLocks {
	return &doctorLocks{locks: make(map[string]*sync.Mutex)}
}

func (d *doctorLocks) get(doctorID string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	lock, exists := d.locks[doctorID]
	if !exists {
		lock = &sync.Mutex{}
		d.locks[doctorID] = lock
	}
	return lock
}
