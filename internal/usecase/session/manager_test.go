package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/permissions"
)

func newManager() *Manager {
	return NewManager(Deps{
		Backend: &fakeBackend{},
		Perms:   permissions.New(nil),
	}, domain.ModeShared)
}

func TestManager_CreateGetDelete(t *testing.T) {
	m := newManager()
	id, ctrl := m.Create("")
	require.NotEmpty(t, id)
	assert.Equal(t, domain.ModeShared, ctrl.Store().Mode(), "empty mode falls back to the default")

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Same(t, ctrl, got)

	m.Delete(id)
	_, ok = m.Get(id)
	assert.False(t, ok)
}

func TestManager_CreateWithExplicitMode(t *testing.T) {
	m := newManager()
	_, ctrl := m.Create(domain.ModePerTab)
	assert.Equal(t, domain.ModePerTab, ctrl.Store().Mode())
}

func TestManager_SweepDropsIdleSessions(t *testing.T) {
	m := newManager()
	id, _ := m.Create("")

	assert.Equal(t, 0, m.Sweep(time.Minute), "fresh session survives")
	assert.Equal(t, 1, m.Sweep(0), "idle session is dropped")
	_, ok := m.Get(id)
	assert.False(t, ok)
}
