package memory

import (
	"fmt"
	"slices"
	"sync"

	"games_api/internal/models"
	"games_api/internal/storage"
)

// Storage keeps games in insertion order together with the id counter.
// Every method holds the lock for its whole duration, so each call observes
// and leaves a consistent collection.
type Storage struct {
	mu     sync.Mutex
	games  []models.Game
	nextID int64
}

func New() *Storage {
	return &Storage{
		games:  make([]models.Game, 0),
		nextID: 1,
	}
}

// Close drops the collection. The id counter is left as is.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = s.games[:0:0]
	return nil
}

func (s *Storage) All() []models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.games)
}

func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.games)
}

// At returns the game at position i of insertion order; negative i counts
// from the end.
func (s *Storage) At(i int) (models.Game, error) {
	const op = "storage.memory.At"

	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 {
		i += len(s.games)
	}
	if i < 0 || i >= len(s.games) {
		return models.Game{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return s.games[i], nil
}

func (s *Storage) Get(id int64) (models.Game, error) {
	const op = "storage.memory.Get"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Game{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return s.games[i], nil
}

// Insert assigns consecutive ids to the inputs and appends them in order.
func (s *Storage) Insert(inputs []models.GameInput) []models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]models.Game, 0, len(inputs))
	for _, in := range inputs {
		created = append(created, models.NewGame(s.nextID, in))
		s.nextID++
	}
	s.games = append(s.games, created...)

	return slices.Clone(created)
}

func (s *Storage) Update(id int64, in models.GameInput) (models.Game, error) {
	const op = "storage.memory.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Game{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	s.games[i].Apply(in)
	return s.games[i], nil
}

func (s *Storage) Delete(id int64) (models.Game, error) {
	const op = "storage.memory.Delete"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Game{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	removed := s.games[i]
	s.games = slices.Delete(s.games, i, i+1)
	return removed, nil
}

func (s *Storage) indexOf(id int64) int {
	return slices.IndexFunc(s.games, func(g models.Game) bool {
		return g.ID == id
	})
}
