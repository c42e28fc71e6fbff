package profile

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriguide/nutriguide/internal/store"
)

// Service provides profile operations.
type Service struct {
	repo   Repository
	guard  *store.Guard
	logger zerolog.Logger
	now    func() time.Time
}

// ServiceConfig holds dependencies for the profile service.
type ServiceConfig struct {
	Repository Repository
	Guard      *store.Guard
	Logger     zerolog.Logger
}

// NewService creates a new profile service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:   cfg.Repository,
		guard:  cfg.Guard,
		logger: cfg.Logger,
		now:    time.Now,
	}
}

// Upsert validates and stores a profile, replacing any profile with the same email.
func (s *Service) Upsert(ctx context.Context, p Profile) (*Profile, error) {
	if s.repo == nil {
		return nil, store.ErrUnavailable
	}
	if fieldErrors := Validate(&p); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := s.guard.Do(ctx, func(ctx context.Context) error {
		return s.repo.Upsert(ctx, &p)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("email", p.Email).Msg("profile upserted")
	return &p, nil
}

// Get retrieves a profile by email.
func (s *Service) Get(ctx context.Context, email string) (*Profile, error) {
	if s.repo == nil {
		return nil, store.ErrUnavailable
	}

	var p *Profile
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.Get(ctx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return p, nil
}
