package language

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

const uniqueCode = "languages_code_key"

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

func (r *PostgresRepo) List(ctx context.Context) ([]Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name, code FROM languages ORDER BY code`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanLanguage)
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.one(ctx, `SELECT id, name, code FROM languages WHERE id = $1`, id)
}

func (r *PostgresRepo) FindByCode(ctx context.Context, code string) (Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.one(ctx, `SELECT id, name, code FROM languages WHERE code = $1`, code)
}

func (r *PostgresRepo) one(ctx context.Context, query string, arg any) (Language, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return Language{}, err
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanLanguage)
	if errors.Is(err, pgx.ErrNoRows) {
		return Language{}, catalog.ErrNotFound
	}
	return l, err
}

func (r *PostgresRepo) InsertIfAbsent(ctx context.Context, l *Language) (catalog.Outcome, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const sql = `
		INSERT INTO languages (name, code)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING
		RETURNING id`
	err := r.db.QueryRow(ctx, sql, l.Name, l.Code).Scan(&l.ID)
	switch {
	case err == nil:
		return catalog.Created, nil
	case errors.Is(err, pgx.ErrNoRows):
		return catalog.Conflict, nil
	default:
		return 0, fmt.Errorf("insert language: %w", err)
	}
}

func (r *PostgresRepo) Create(ctx context.Context, l *Language) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, `INSERT INTO languages (name, code) VALUES ($1, $2) RETURNING id`, l.Name, l.Code).Scan(&l.ID)
	if postgres.IsUniqueViolation(err, uniqueCode) {
		return catalog.ErrDuplicate
	}
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, l *Language) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE languages SET name = $1, code = $2 WHERE id = $3`, l.Name, l.Code, l.ID)
	if postgres.IsUniqueViolation(err, uniqueCode) {
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

	tag, err := r.db.Exec(ctx, `DELETE FROM languages WHERE id = $1`, id)
	if postgres.IsForeignKeyViolation(err) {
		return catalog.ErrInUse
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanLanguage(row pgx.CollectableRow) (Language, error) {
	var l Language
	err := row.Scan(&l.ID, &l.Name, &l.Code)
	return l, err
}
