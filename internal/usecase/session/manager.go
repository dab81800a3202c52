package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

// Manager owns one Controller per live session. Each session serializes its
// own mutation; the manager only guards the registry itself.
type Manager struct {
	deps        Deps
	defaultMode domain.CommonDataMode

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	ctrl     *Controller
	lastSeen time.Time
}

func NewManager(deps Deps, defaultMode domain.CommonDataMode) *Manager {
	if defaultMode != domain.ModePerTab {
		defaultMode = domain.ModeShared
	}
	return &Manager{deps: deps, defaultMode: defaultMode, sessions: map[string]*entry{}}
}

// Create starts a session in the given mode, or the configured default when
// mode is empty.
func (m *Manager) Create(mode domain.CommonDataMode) (string, *Controller) {
	if mode == "" {
		mode = m.defaultMode
	}
	id := uuid.NewString()
	ctrl := NewController(m.deps, mode)
	m.mu.Lock()
	m.sessions[id] = &entry{ctrl: ctrl, lastSeen: time.Now()}
	m.mu.Unlock()
	return id, ctrl
}

func (m *Manager) Get(id string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.ctrl, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		e.ctrl.Store().ClearResults()
		delete(m.sessions, id)
	}
}

// Sweep drops sessions idle longer than maxIdle and returns how many went.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
