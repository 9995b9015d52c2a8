package language

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/platform/logging"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Language, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Language, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, l *Language) error {
	if err := catalog.Validate("language", l); err != nil {
		return err
	}
	return s.repo.Create(ctx, l)
}

func (s *Service) Update(ctx context.Context, l *Language) error {
	if err := catalog.Validate("language", l); err != nil {
		return err
	}
	return s.repo.Update(ctx, l)
}

// Delete fails with catalog.ErrInUse while books still reference the language.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Resolve returns the language stored under code, creating it with an empty
// display name when missing. The empty code is a valid code.
func (s *Service) Resolve(ctx context.Context, code string) (Language, catalog.Outcome, error) {
	l, err := s.repo.FindByCode(ctx, code)
	if err == nil {
		return l, catalog.Found, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return Language{}, 0, err
	}

	l = Language{Code: code}
	if err := catalog.Validate("language", &l); err != nil {
		return Language{}, 0, err
	}
	outcome, err := s.repo.InsertIfAbsent(ctx, &l)
	if err != nil {
		return Language{}, 0, err
	}
	if outcome == catalog.Created {
		logging.FromContext(ctx).Debug().Str("code", code).Int64("language_id", l.ID).Msg("language created")
		return l, catalog.Created, nil
	}

	winner, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return Language{}, 0, fmt.Errorf("language %q after insert conflict: %w", code, err)
	}
	return winner, catalog.Conflict, nil
}

// SeedNames fills in display names for the given codes. Languages that
// already carry a name are left alone. It returns how many rows changed.
func (s *Service) SeedNames(ctx context.Context, names map[string]string) (int, error) {
	updated := 0
	for code, name := range names {
		l, _, err := s.Resolve(ctx, code)
		if err != nil {
			return updated, fmt.Errorf("seed %q: %w", code, err)
		}
		if l.Name != "" {
			continue
		}
		l.Name = name
		if err := s.Update(ctx, &l); err != nil {
			return updated, fmt.Errorf("seed %q: %w", code, err)
		}
		updated++
	}
	return updated, nil
}
