package author

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/platform/logging"
)

// Service provides author CRUD and the get-or-create-many resolver used by
// the importer.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, q Query) ([]Author, int, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (Author, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, a *Author) error {
	if err := catalog.Validate("author", a); err != nil {
		return err
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, a *Author) error {
	if err := catalog.Validate("author", a); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ResolveMany maps raw "First [Middle...] Last" strings to stored authors,
// creating the ones that do not match an existing row. The result keeps the
// input order; names without any token are skipped.
func (s *Service) ResolveMany(ctx context.Context, names []string) ([]Author, error) {
	out := make([]Author, 0, len(names))
	for _, raw := range names {
		name, ok := ParseName(raw)
		if !ok {
			logging.FromContext(ctx).Warn().Str("name", raw).Msg("skipping empty author name")
			continue
		}
		a, outcome, err := s.Resolve(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve author %q: %w", raw, err)
		}
		logging.FromContext(ctx).Debug().Str("name", raw).Int64("author_id", a.ID).Stringer("outcome", outcome).Msg("author resolved")
		out = append(out, a)
	}
	return out, nil
}

// Resolve returns the author n refers to. A lookup miss is followed by an
// insert; losing the insert to a concurrent writer falls back to a lookup of
// the row that won.
func (s *Service) Resolve(ctx context.Context, n Name) (Author, catalog.Outcome, error) {
	existing, err := s.repo.ListByLastName(ctx, n.Last)
	if err != nil {
		return Author{}, 0, err
	}
	if a, ok := Match(n, existing); ok {
		return a, catalog.Found, nil
	}

	a := Author{FirstName: n.First, SecondName: n.Second, LastName: n.Last}
	outcome, err := s.repo.InsertIfAbsent(ctx, &a)
	if err != nil {
		return Author{}, 0, err
	}
	if outcome == catalog.Created {
		return a, catalog.Created, nil
	}

	winner, err := s.repo.FindByName(ctx, n.First, n.Last)
	if errors.Is(err, catalog.ErrNotFound) {
		return Author{}, 0, fmt.Errorf("author %q vanished after insert conflict: %w", n.First+" "+n.Last, err)
	}
	if err != nil {
		return Author{}, 0, err
	}
	return winner, catalog.Conflict, nil
}
