package language

import (
	"context"

	"bookcatalog/internal/catalog"
)

// Repository defines the contract for language storage.
type Repository interface {
	List(ctx context.Context) ([]Language, error)
	Get(ctx context.Context, id int64) (Language, error)
	FindByCode(ctx context.Context, code string) (Language, error)
	// InsertIfAbsent reports catalog.Conflict when the code is already taken.
	InsertIfAbsent(ctx context.Context, l *Language) (catalog.Outcome, error)
	Create(ctx context.Context, l *Language) error
	Update(ctx context.Context, l *Language) error
	Delete(ctx context.Context, id int64) error
}
