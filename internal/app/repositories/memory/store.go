// Package memory is an in-process implementation of the repository
// interfaces, used by the "memory" database driver and by tests.
package memory

import (
	"sync"
	"time"

	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/repositories"
)

type (
	// Store holds one table per entity behind a single lock
	Store struct {
		mu      sync.RWMutex
		users   map[string]*models.User
		videos  map[string]*models.Video
		notes   map[string]*models.Note
		quizzes map[string]*models.Quiz
		now     func() time.Time
		seq     int64
	}
)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:   make(map[string]*models.User),
		videos:  make(map[string]*models.Video),
		notes:   make(map[string]*models.Note),
		quizzes: make(map[string]*models.Quiz),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NewRepositories returns repositories backed by a fresh store
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:  &userRepository{s: s},
		VideoRepository: &videoRepository{s: s},
		NoteRepository:  &noteRepository{s: s},
		QuizRepository:  &quizRepository{s: s},
	}
}

// stamp returns a strictly increasing timestamp so newest-first ordering
// stays deterministic even when inserts land in the same clock tick.
// Callers hold the write lock.
func (s *Store) stamp() time.Time {
	s.seq++
	return s.now().Add(time.Duration(s.seq) * time.Nanosecond)
}

// userName resolves a display name. Callers hold at least the read lock.
func (s *Store) userName(id string) string {
	if u, ok := s.users[id]; ok && u.Name != "" {
		return u.Name
	}
	return models.UnknownName
}
