package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nutriguide/nutriguide/internal/store"
)

// Service provides food catalog operations.
type Service struct {
	repo   Repository
	guard  *store.Guard
	logger zerolog.Logger
	now    func() time.Time
}

// ServiceConfig holds dependencies for the catalog service.
type ServiceConfig struct {
	Repository Repository
	Guard      *store.Guard
	Logger     zerolog.Logger
}

// NewService creates a new catalog service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:   cfg.Repository,
		guard:  cfg.Guard,
		logger: cfg.Logger,
		now:    time.Now,
	}
}

// Add validates and stores a new food item, returning its generated ID.
func (s *Service) Add(ctx context.Context, f FoodItem) (string, error) {
	if s.repo == nil {
		return "", store.ErrUnavailable
	}
	if f.Serving == "" {
		f.Serving = DefaultServing
	}
	if fieldErrors := Validate(&f); len(fieldErrors) > 0 {
		return "", &ValidationError{Errors: fieldErrors}
	}

	f.ID = "food_" + uuid.New().String()
	f.CreatedAt = s.now()

	err := s.guard.Do(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, &f)
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug().Str("food_id", f.ID).Str("name", f.Name).Msg("food added to catalog")
	return f.ID, nil
}

// Search returns catalog items whose name contains query, ignoring case.
// A zero limit means DefaultSearchLimit; others are clamped to [1, MaxSearchLimit].
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*FoodItem, error) {
	if s.repo == nil {
		return nil, store.ErrUnavailable
	}

	var items []*FoodItem
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.repo.Search(ctx, query, ClampLimit(limit))
		return err
	})
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*FoodItem{}
	}
	return items, nil
}
