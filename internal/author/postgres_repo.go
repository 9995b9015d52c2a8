package author

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueAuthor = "unique_author"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Author, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where := ""
	args := []any{}
	if q.LastName != "" {
		where = "WHERE lower(last_name) = lower($1)"
		args = append(args, q.LastName)
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM authors "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	dataSQL := fmt.Sprintf(`
		SELECT id, first_name, second_name, last_name
		FROM authors
		%s
		ORDER BY last_name, first_name, id
		LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	rows, err := r.db.Query(ctx, dataSQL, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	out, err := collect(rows)
	return out, total, err
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `SELECT id, first_name, second_name, last_name FROM authors WHERE id = $1`
	var a Author
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.FirstName, &a.SecondName, &a.LastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Author{}, catalog.ErrNotFound
	}
	return a, err
}

func (r *PostgresRepo) ListByLastName(ctx context.Context, lastName string) ([]Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, first_name, second_name, last_name
		FROM authors
		WHERE last_name = $1
		ORDER BY id`
	rows, err := r.db.Query(ctx, query, lastName)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *PostgresRepo) FindByName(ctx context.Context, firstName, lastName string) (Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, first_name, second_name, last_name
		FROM authors
		WHERE first_name = $1 AND last_name = $2`
	var a Author
	err := r.db.QueryRow(ctx, query, firstName, lastName).Scan(&a.ID, &a.FirstName, &a.SecondName, &a.LastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Author{}, catalog.ErrNotFound
	}
	return a, err
}

func (r *PostgresRepo) InsertIfAbsent(ctx context.Context, a *Author) (catalog.Outcome, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const sql = `
		INSERT INTO authors (first_name, second_name, last_name)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT unique_author DO NOTHING
		RETURNING id`
	err := r.db.QueryRow(ctx, sql, a.FirstName, a.SecondName, a.LastName).Scan(&a.ID)
	switch {
	case err == nil:
		return catalog.Created, nil
	case errors.Is(err, pgx.ErrNoRows):
		return catalog.Conflict, nil
	default:
		return 0, fmt.Errorf("insert author: %w", err)
	}
}

func (r *PostgresRepo) Create(ctx context.Context, a *Author) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const sql = `
		INSERT INTO authors (first_name, second_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRow(ctx, sql, a.FirstName, a.SecondName, a.LastName).Scan(&a.ID)
	if postgres.IsUniqueViolation(err, uniqueAuthor) {
		return catalog.ErrDuplicate
	}
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, a *Author) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const sql = `
		UPDATE authors SET first_name = $1, second_name = $2, last_name = $3
		WHERE id = $4`
	tag, err := r.db.Exec(ctx, sql, a.FirstName, a.SecondName, a.LastName, a.ID)
	if postgres.IsUniqueViolation(err, uniqueAuthor) {
		return catalog.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func collect(rows pgx.Rows) ([]Author, error) {
	defer rows.Close()
	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.SecondName, &a.LastName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
