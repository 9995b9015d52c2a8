package book

import (
	"context"

	"bookcatalog/internal/catalog"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context, q Query) ([]Book, int, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, b *Book, authorIDs []int64) error
	// Update replaces the scalar fields and the full author set.
	Update(ctx context.Context, b *Book, authorIDs []int64) error
	Delete(ctx context.Context, id int64) error
	// CreateIfAbsent inserts b and links its authors unless a book with the
	// same title, year and language exists, in which case the existing row
	// is left untouched, b.ID is set to it and catalog.Found is returned.
	CreateIfAbsent(ctx context.Context, b *Book, authorIDs []int64) (catalog.Outcome, error)
}
