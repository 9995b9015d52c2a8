package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/author"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueBook = "unique_book"

const selectBook = `
	SELECT b.id, b.title, b.publication_year, b.isbn, b.page_count, b.cover_link, b.language_id, l.code
	FROM books b
	JOIN languages l ON l.id = b.language_id`

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

// authorFilter restricts books to those with at least one author matching cond.
func authorFilter(cond string) string {
	return `EXISTS (
		SELECT 1 FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = b.id AND ` + cond + `)`
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	add := func(clause string, arg any) {
		clauses = append(clauses, fmt.Sprintf(clause, argn))
		args = append(args, arg)
		argn++
	}

	if q.AuthorFirstName != "" {
		add(authorFilter("lower(a.first_name) = lower($%d)"), q.AuthorFirstName)
	}
	if q.AuthorSecondName != "" {
		add(authorFilter("a.second_name ILIKE '%%' || $%d || '%%'"), escapeLike(q.AuthorSecondName))
	}
	if q.AuthorLastName != "" {
		add(authorFilter("lower(a.last_name) = lower($%d)"), q.AuthorLastName)
	}
	if q.Language != "" {
		add("lower(l.code) = lower($%d)", q.Language)
	}
	if q.Title != "" {
		add("lower(b.title) = lower($%d)", q.Title)
	}
	if q.TitleContains != "" {
		add("strpos(b.title, $%d) > 0", q.TitleContains)
	}
	if q.YearMin != nil {
		add("b.publication_year >= $%d", *q.YearMin)
	}
	if q.YearMax != nil {
		add("b.publication_year <= $%d", *q.YearMax)
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	countSQL := "SELECT COUNT(*) FROM books b JOIN languages l ON l.id = b.language_id " + where
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf("%s %s ORDER BY b.id LIMIT $%d OFFSET $%d", selectBook, where, argn, argn+1)
	rows, err := r.db.Query(ctx, dataSQL, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadAuthors(ctx, books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, selectBook+" WHERE b.id = $1", id)
	if err != nil {
		return Book{}, err
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, catalog.ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}

	books := []Book{b}
	if err := r.loadAuthors(ctx, books); err != nil {
		return Book{}, err
	}
	return books[0], nil
}

// loadAuthors fills Authors for every book with one query, keeping link order.
func (r *PostgresRepo) loadAuthors(ctx context.Context, books []Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]int64, len(books))
	index := make(map[int64]int, len(books))
	for i := range books {
		ids[i] = books[i].ID
		index[books[i].ID] = i
		books[i].Authors = []author.Author{}
	}

	const query = `
		SELECT ba.book_id, a.id, a.first_name, a.second_name, a.last_name
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY ba.id`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var a author.Author
		if err := rows.Scan(&bookID, &a.ID, &a.FirstName, &a.SecondName, &a.LastName); err != nil {
			return err
		}
		i := index[bookID]
		books[i].Authors = append(books[i].Authors, a)
	}
	return rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book, authorIDs []int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const sql = `
			INSERT INTO books (title, publication_year, isbn, page_count, cover_link, language_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`
		err := tx.QueryRow(ctx, sql, b.Title, b.PublicationYear, b.ISBN, b.PageCount, b.CoverLink, b.LanguageID).Scan(&b.ID)
		if err != nil {
			return mapWriteError(err)
		}
		return linkAuthors(ctx, tx, b.ID, authorIDs)
	})
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book, authorIDs []int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const sql = `
			UPDATE books
			SET title = $1, publication_year = $2, isbn = $3, page_count = $4, cover_link = $5, language_id = $6
			WHERE id = $7`
		tag, err := tx.Exec(ctx, sql, b.Title, b.PublicationYear, b.ISBN, b.PageCount, b.CoverLink, b.LanguageID, b.ID)
		if err != nil {
			return mapWriteError(err)
		}
		if tag.RowsAffected() == 0 {
			return catalog.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, b.ID); err != nil {
			return err
		}
		return linkAuthors(ctx, tx, b.ID, authorIDs)
	})
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) CreateIfAbsent(ctx context.Context, b *Book, authorIDs []int64) (catalog.Outcome, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	outcome := catalog.Created
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO books (title, publication_year, isbn, page_count, cover_link, language_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT ON CONSTRAINT unique_book DO NOTHING
			RETURNING id`
		err := tx.QueryRow(ctx, insert, b.Title, b.PublicationYear, b.ISBN, b.PageCount, b.CoverLink, b.LanguageID).Scan(&b.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			outcome = catalog.Found
			const lookup = `SELECT id FROM books WHERE title = $1 AND publication_year = $2 AND language_id = $3`
			return tx.QueryRow(ctx, lookup, b.Title, b.PublicationYear, b.LanguageID).Scan(&b.ID)
		}
		if err != nil {
			return mapWriteError(err)
		}
		return linkAuthors(ctx, tx, b.ID, authorIDs)
	})
	if err != nil {
		return 0, fmt.Errorf("create book if absent: %w", err)
	}
	return outcome, nil
}

func linkAuthors(ctx context.Context, tx pgx.Tx, bookID int64, authorIDs []int64) error {
	const sql = `
		INSERT INTO book_authors (book_id, author_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT (book_id, author_id) DO NOTHING`
	if len(authorIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, sql, bookID, authorIDs); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func mapWriteError(err error) error {
	switch {
	case postgres.IsUniqueViolation(err, uniqueBook):
		return catalog.ErrDuplicate
	case postgres.IsForeignKeyViolation(err):
		return catalog.ErrInvalidReference
	default:
		return err
	}
}

func scanBook(row pgx.CollectableRow) (Book, error) {
	var b Book
	var year int
	err := row.Scan(&b.ID, &b.Title, &year, &b.ISBN, &b.PageCount, &b.CoverLink, &b.LanguageID, &b.Language)
	b.PublicationYear = &year
	return b, err
}
