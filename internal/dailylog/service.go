package dailylog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nutriguide/nutriguide/internal/events"
	"github.com/nutriguide/nutriguide/internal/store"
)

const tracerName = "github.com/nutriguide/nutriguide/internal/dailylog"

// AddStatus reports whether AddEntry created a new log or updated one.
type AddStatus string

const (
	StatusCreated AddStatus = "created"
	StatusUpdated AddStatus = "updated"
)

// AddResult is the outcome of AddEntry.
type AddResult struct {
	Status AddStatus
	ID     string
	Log    *DailyLog
}

// ServiceConfig holds dependencies for the daily log service.
type ServiceConfig struct {
	Repository Repository
	Guard      *store.Guard
	Publisher  events.Publisher
	Logger     zerolog.Logger

	// MaxRetries bounds how often a write is retried after losing a
	// concurrent-update race. Default: 5
	MaxRetries uint64

	// RetryInitialInterval is the first backoff interval between retries.
	// Default: 10ms
	RetryInitialInterval time.Duration

	// PublishTimeout bounds how long a write waits for its change event to
	// be acknowledged. Default: 2s
	PublishTimeout time.Duration
}

// Service aggregates meal entries into daily logs.
type Service struct {
	repo       Repository
	guard      *store.Guard
	publisher  events.Publisher
	logger     zerolog.Logger
	tracer     trace.Tracer
	maxRetries uint64
	retryStart time.Duration
	pubTimeout time.Duration
	now        func() time.Time
}

// NewService creates a new daily log service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Publisher == nil {
		cfg.Publisher = events.NopPublisher{}
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 5
	}
	if cfg.RetryInitialInterval == 0 {
		cfg.RetryInitialInterval = 10 * time.Millisecond
	}
	if cfg.PublishTimeout == 0 {
		cfg.PublishTimeout = 2 * time.Second
	}

	return &Service{
		repo:       cfg.Repository,
		guard:      cfg.Guard,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger,
		tracer:     otel.Tracer(tracerName),
		maxRetries: cfg.MaxRetries,
		retryStart: cfg.RetryInitialInterval,
		pubTimeout: cfg.PublishTimeout,
		now:        time.Now,
	}
}

// GetLog returns the log for (email, date).
// A log that has never been written is returned as an empty log, not an error.
func (s *Service) GetLog(ctx context.Context, email, date string) (*DailyLog, error) {
	if s.repo == nil {
		return nil, store.ErrUnavailable
	}
	if fieldErrors := ValidateKey(email, date); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	l, err := s.load(ctx, email, date)
	if errors.Is(err, ErrLogNotFound) {
		return EmptyLog(email, date), nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// AddEntry appends an entry to the log for (email, date), creating the log
// if it doesn't exist, and recomputes its totals.
func (s *Service) AddEntry(ctx context.Context, email, date string, entry MealEntry) (*AddResult, error) {
	ctx, span := s.tracer.Start(ctx, "dailylog.AddEntry", trace.WithAttributes(
		attribute.String("log.date", date),
	))
	defer span.End()

	if s.repo == nil {
		return nil, store.ErrUnavailable
	}
	fieldErrors := ValidateKey(email, date)
	fieldErrors = append(fieldErrors, ValidateEntry(&entry)...)
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	l, created, err := s.mutate(ctx, email, date, func(l *DailyLog, _ bool) error {
		l.Entries = append(l.Entries, entry)
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	status := StatusUpdated
	if created {
		status = StatusCreated
	}
	span.SetAttributes(
		attribute.String("log.status", string(status)),
		attribute.Int("log.entry_count", len(l.Entries)),
	)
	s.publish(ctx, l, events.ReasonEntryAdded)

	return &AddResult{Status: status, ID: l.ID, Log: l}, nil
}

// DeleteEntry removes the entry at index from the log for (email, date) and
// recomputes its totals. Entries after index shift down by one.
func (s *Service) DeleteEntry(ctx context.Context, email, date string, index int) (*DailyLog, error) {
	ctx, span := s.tracer.Start(ctx, "dailylog.DeleteEntry", trace.WithAttributes(
		attribute.String("log.date", date),
		attribute.Int("log.index", index),
	))
	defer span.End()

	if s.repo == nil {
		return nil, store.ErrUnavailable
	}
	if fieldErrors := ValidateKey(email, date); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	l, _, err := s.mutate(ctx, email, date, func(l *DailyLog, exists bool) error {
		if !exists {
			return ErrLogNotFound
		}
		if index < 0 || index >= len(l.Entries) {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, index, len(l.Entries))
		}
		l.Entries = append(l.Entries[:index], l.Entries[index+1:]...)
		return nil
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("log.entry_count", len(l.Entries)))
	s.publish(ctx, l, events.ReasonEntryDeleted)

	return l, nil
}

// Reconcile recomputes the totals of a stored log and rewrites them if they
// differ from its entries. It reports whether the log was rewritten.
func (s *Service) Reconcile(ctx context.Context, email, date string) (bool, error) {
	if s.repo == nil {
		return false, store.ErrUnavailable
	}

	drifted := false
	l, _, err := s.mutate(ctx, email, date, func(l *DailyLog, exists bool) error {
		if !exists {
			return ErrLogNotFound
		}
		drifted = l.Totals != RecomputeTotals(l.Entries)
		if !drifted {
			return errUnchanged
		}
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.logger.Info().
		Str("email", l.Email).
		Str("date", l.Date).
		Int64("version", l.Version).
		Msg("daily log totals reconciled")
	return drifted, nil
}

// errUnchanged aborts a mutation that has nothing to write.
var errUnchanged = errors.New("unchanged")

// mutate runs a read-modify-write cycle on a log. apply receives the current
// log (or a fresh empty one when exists is false) and edits its entries;
// totals are recomputed afterwards. Writes are conditional on the version
// that was read, and a lost race reloads and re-applies with backoff.
func (s *Service) mutate(
	ctx context.Context,
	email, date string,
	apply func(l *DailyLog, exists bool) error,
) (*DailyLog, bool, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryStart
	bo.MaxInterval = 50 * s.retryStart
	bo.MaxElapsedTime = 0

	var (
		result  *DailyLog
		created bool
	)

	operation := func() error {
		current, err := s.load(ctx, email, date)
		exists := true
		if errors.Is(err, ErrLogNotFound) {
			exists = false
			current = EmptyLog(email, date)
		} else if err != nil {
			return backoff.Permanent(err)
		}

		if err := apply(current, exists); err != nil {
			return backoff.Permanent(err)
		}

		now := s.now()
		current.Totals = RecomputeTotals(current.Entries)
		current.UpdatedAt = now

		if exists {
			expected := current.Version
			err = s.guard.Do(ctx, func(ctx context.Context) error {
				return s.repo.Update(ctx, current, expected)
			})
		} else {
			current.ID = "log_" + uuid.New().String()
			current.CreatedAt = now
			err = s.guard.Do(ctx, func(ctx context.Context) error {
				return s.repo.Create(ctx, current)
			})
		}

		if errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrLogExists) {
			s.logger.Debug().
				Str("email", email).
				Str("date", date).
				Msg("concurrent daily log update, retrying")
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}

		result = current
		created = !exists
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, s.maxRetries), ctx))
	if err != nil {
		if errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrLogExists) {
			return nil, false, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return nil, false, err
	}

	return result, created, nil
}

func (s *Service) load(ctx context.Context, email, date string) (*DailyLog, error) {
	var l *DailyLog
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		l, err = s.repo.Get(ctx, email, date)
		return err
	})
	return l, err
}

// publish emits a change event. Failures are logged, never returned: the log
// has already been written. The wait is bounded by pubTimeout and does not
// end early when the caller goes away.
func (s *Service) publish(ctx context.Context, l *DailyLog, reason string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.pubTimeout)
	defer cancel()

	err := s.publisher.PublishLogChanged(ctx, events.LogChanged{
		Email:      l.Email,
		Date:       l.Date,
		Version:    l.Version,
		EntryCount: len(l.Entries),
		Reason:     reason,
		OccurredAt: l.UpdatedAt,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("email", l.Email).
			Str("date", l.Date).
			Str("reason", reason).
			Msg("failed to publish log change")
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if !errors.Is(err, ErrInvalidIndex) && !errors.Is(err, ErrLogNotFound) {
		span.SetStatus(codes.Error, err.Error())
	}
}
