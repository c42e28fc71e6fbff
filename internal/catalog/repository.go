package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Repository defines the interface for food catalog persistence.
type Repository interface {
	// Create stores a new food item.
	Create(ctx context.Context, f *FoodItem) error

	// Search returns up to limit items whose name contains query, ignoring
	// case, oldest first. An empty query matches every item.
	Search(ctx context.Context, query string, limit int) ([]*FoodItem, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local development. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*FoodItem
}

// NewInMemoryRepository creates a new in-memory catalog repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items: make(map[string]*FoodItem),
	}
}

// Create stores a new food item.
func (r *InMemoryRepository) Create(_ context.Context, f *FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[f.ID]; ok {
		return ErrFoodExists
	}

	r.items[f.ID] = copyFood(f)
	return nil
}

// Search finds items by case-insensitive name substring.
func (r *InMemoryRepository) Search(_ context.Context, query string, limit int) ([]*FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var matches []*FoodItem
	for _, f := range r.items {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			matches = append(matches, copyFood(f))
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func copyFood(f *FoodItem) *FoodItem {
	cpy := *f
	if f.Source != nil {
		s := *f.Source
		cpy.Source = &s
	}
	if f.CreatedBy != nil {
		s := *f.CreatedBy
		cpy.CreatedBy = &s
	}
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
