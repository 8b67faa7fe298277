package editor

import "sync"

// DraftStore caches the set a user opened for editing so a reload can resume it.
type DraftStore interface {
	Load() (Draft, bool)
	Save(Draft)
	Clear()
}

type MemoryDrafts struct {
	mu    sync.Mutex
	draft *Draft
}

func (m *MemoryDrafts) Load() (Draft, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return Draft{}, false
	}
	return m.draft.clone(), true
}

func (m *MemoryDrafts) Save(d Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d = d.clone()
	m.draft = &d
}

func (m *MemoryDrafts) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
}
