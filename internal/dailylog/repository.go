package dailylog

import (
	"context"
	"sync"
)

// Repository defines the interface for daily log persistence.
type Repository interface {
	// Get retrieves the log for (email, date).
	// Returns ErrLogNotFound if no log has been written for the key.
	Get(ctx context.Context, email, date string) (*DailyLog, error)

	// Create stores a new log with version 1.
	// Returns ErrLogExists if a log already exists for (email, date).
	Create(ctx context.Context, log *DailyLog) error

	// Update replaces the entries and totals of an existing log, provided its
	// stored version still equals expectedVersion. On success log.Version is
	// advanced. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, log *DailyLog, expectedVersion int64) error
}

type logKey struct {
	email string
	date  string
}

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local development. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu   sync.RWMutex
	logs map[logKey]*DailyLog
}

// NewInMemoryRepository creates a new in-memory daily log repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		logs: make(map[logKey]*DailyLog),
	}
}

// Get retrieves a log by (email, date).
func (r *InMemoryRepository) Get(_ context.Context, email, date string) (*DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.logs[logKey{email: email, date: date}]
	if !ok {
		return nil, ErrLogNotFound
	}

	return copyLog(l), nil
}

// Create stores a new log.
func (r *InMemoryRepository) Create(_ context.Context, l *DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey{email: l.Email, date: l.Date}
	if _, ok := r.logs[key]; ok {
		return ErrLogExists
	}

	l.Version = 1
	r.logs[key] = copyLog(l)
	return nil
}

// Update replaces the entries and totals of a log if its version matches.
func (r *InMemoryRepository) Update(_ context.Context, l *DailyLog, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey{email: l.Email, date: l.Date}
	stored, ok := r.logs[key]
	if !ok || stored.Version != expectedVersion {
		return ErrVersionConflict
	}

	l.Version = expectedVersion + 1
	updated := copyLog(l)
	updated.ID = stored.ID
	updated.CreatedAt = stored.CreatedAt
	r.logs[key] = updated
	return nil
}

// copyLog creates a deep copy of a log.
func copyLog(l *DailyLog) *DailyLog {
	cpy := *l
	cpy.Entries = make([]MealEntry, len(l.Entries))
	for i, e := range l.Entries {
		if e.FoodID != nil {
			id := *e.FoodID
			e.FoodID = &id
		}
		cpy.Entries[i] = e
	}
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
