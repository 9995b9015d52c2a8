package author

import (
	"context"

	"bookcatalog/internal/catalog"
)

// Repository defines the contract for author storage.
type Repository interface {
	List(ctx context.Context, q Query) ([]Author, int, error)
	Get(ctx context.Context, id int64) (Author, error)
	ListByLastName(ctx context.Context, lastName string) ([]Author, error)
	FindByName(ctx context.Context, firstName, lastName string) (Author, error)
	// InsertIfAbsent reports catalog.Conflict instead of failing when the
	// (first name, last name) pair is already taken.
	InsertIfAbsent(ctx context.Context, a *Author) (catalog.Outcome, error)
	Create(ctx context.Context, a *Author) error
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id int64) error
}
