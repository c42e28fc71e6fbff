package profile

import (
	"context"
	"sync"
)

// Repository defines the interface for profile persistence.
type Repository interface {
	// Get retrieves a profile by email.
	Get(ctx context.Context, email string) (*Profile, error)

	// Upsert creates the profile or replaces the stored one with the same email.
	// CreatedAt of an existing profile is preserved and written back to p.
	Upsert(ctx context.Context, p *Profile) error
}

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local development. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewInMemoryRepository creates a new in-memory profile repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		profiles: make(map[string]*Profile),
	}
}

// Get retrieves a profile by email.
func (r *InMemoryRepository) Get(_ context.Context, email string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[email]
	if !ok {
		return nil, ErrProfileNotFound
	}

	return copyProfile(p), nil
}

// Upsert creates or replaces a profile.
func (r *InMemoryRepository) Upsert(_ context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[p.Email]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	r.profiles[p.Email] = copyProfile(p)
	return nil
}

func copyProfile(p *Profile) *Profile {
	cpy := *p
	if p.Name != nil {
		name := *p.Name
		cpy.Name = &name
	}
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
