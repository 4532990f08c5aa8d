// Package reorder keeps the client side category order and drives drag and
// drop reordering against the API.
package reorder

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
)

// Notification texts shown to the admin
const (
	MsgLoadFailed     = "Greška pri učitavanju stavki"
	MsgReorderSuccess = "Redoslijed kategorija je promijenjen"
	MsgReorderFailed  = "Greška pri promjeni redoslijeda"
)

// CategoryAPI is the part of the REST client the store and controller use
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ReorderCategories(ctx context.Context, categories []models.Category) error
}

// Notifier surfaces outcomes to the user
type Notifier interface {
	Success(msg string)
	Failure(msg string, err error)
}

// LogNotifier reports notifications through slog
type LogNotifier struct {
	Logger *slog.Logger
}

// Success logs msg at info level
func (n LogNotifier) Success(msg string) {
	n.Logger.Info(msg)
}

// Failure logs msg and err at error level
func (n LogNotifier) Failure(msg string, err error) {
	n.Logger.Error(msg, "error", err)
}

// Store holds the category list in server order
type Store struct {
	api    CategoryAPI
	notify Notifier

	mu         sync.RWMutex
	categories []models.Category
}

// NewStore creates an empty store
func NewStore(api CategoryAPI, notify Notifier) *Store {
	return &Store{api: api, notify: notify}
}

// Load replaces the whole list with the server's. On failure the previous
// list is kept and a failure notification is raised.
func (s *Store) Load(ctx context.Context) error {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		s.notify.Failure(MsgLoadFailed, err)
		return err
	}
	s.replace(categories)
	return nil
}

// Categories returns a copy of the current order
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Len returns the number of categories held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories)
}

func (s *Store) replace(categories []models.Category) {
	next := make([]models.Category, len(categories))
	copy(next, categories)

	s.mu.Lock()
	s.categories = next
	s.mu.Unlock()
}
