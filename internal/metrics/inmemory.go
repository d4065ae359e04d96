package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered  uint64
	LoginSuccesses   uint64
	LoginFailures    uint64
	FavoritesAdded   uint64
	FavoritesRemoved uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered  uint64
	loginSuccesses   uint64
	loginFailures    uint64
	favoritesAdded   uint64
	favoritesRemoved uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:  atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:   atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:    atomic.LoadUint64(&m.loginFailures),
		FavoritesAdded:   atomic.LoadUint64(&m.favoritesAdded),
		FavoritesRemoved: atomic.LoadUint64(&m.favoritesRemoved),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncFavoriteAdded increments the favorite-added counter.
func (m *InMemoryRecorder) IncFavoriteAdded() {
	atomic.AddUint64(&m.favoritesAdded, 1)
}

// IncFavoriteRemoved increments the favorite-removed counter.
func (m *InMemoryRecorder) IncFavoriteRemoved() {
	atomic.AddUint64(&m.favoritesRemoved, 1)
}
