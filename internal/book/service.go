package book

import (
	"context"

	"bookcatalog/internal/catalog"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of books matching the query and the total match count.
func (s *Service) List(ctx context.Context, q Query) ([]Book, int, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, b *Book, authorIDs []int64) error {
	if err := catalog.Validate("book", b); err != nil {
		return err
	}
	return s.repo.Create(ctx, b, authorIDs)
}

func (s *Service) Update(ctx context.Context, b *Book, authorIDs []int64) error {
	if err := catalog.Validate("book", b); err != nil {
		return err
	}
	return s.repo.Update(ctx, b, authorIDs)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Upsert stores d under languageID with the given authors unless the book
// already exists. Existing books are never modified; their author links are
// not extended either.
func (s *Service) Upsert(ctx context.Context, d Draft, languageID int64, authorIDs []int64) (Book, catalog.Outcome, error) {
	b := Book{Draft: d, LanguageID: languageID}
	if err := catalog.Validate("book", &b); err != nil {
		return Book{}, 0, err
	}
	outcome, err := s.repo.CreateIfAbsent(ctx, &b, authorIDs)
	if err != nil {
		return Book{}, 0, err
	}
	return b, outcome, nil
}
