package minutes

import "sync"

// meetingLocks serializes draft writes per meeting inside one process.
// Cross-process writers are still fenced by the repository's conditional
// update; this only keeps local goroutines from burning round trips on
// conflicts they would lose anyway.
type meetingLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMeetingLocks() *meetingLocks {
	return &meetingLocks{locks: make(map[string]*sync.Mutex)}
}

func (m *meetingLocks) forMeeting(meetingID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[meetingID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[meetingID] = lock
	}
	return lock
}
