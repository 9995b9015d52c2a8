package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/ingest"
	"bookcatalog/internal/language"

	"github.com/google/uuid"
)

// AuthorRepo is an in-memory author.Repository enforcing the
// (first name, last name) uniqueness constraint.
type AuthorRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []author.Author
}

func NewAuthorRepo(seed ...author.Author) *AuthorRepo {
	r := &AuthorRepo{}
	for _, a := range seed {
		a := a
		_ = r.Create(context.Background(), &a)
	}
	return r
}

// All returns a copy of every stored author ordered by id.
func (r *AuthorRepo) All() []author.Author {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]author.Author(nil), r.rows...)
}

func (r *AuthorRepo) List(_ context.Context, q author.Query) ([]author.Author, int, error) {
	var out []author.Author
	for _, a := range r.All() {
		if q.LastName == "" || strings.EqualFold(a.LastName, q.LastName) {
			out = append(out, a)
		}
	}
	total := len(out)
	return page(out, q.Limit, q.Offset), total, nil
}

func (r *AuthorRepo) Get(_ context.Context, id int64) (author.Author, error) {
	for _, a := range r.All() {
		if a.ID == id {
			return a, nil
		}
	}
	return author.Author{}, catalog.ErrNotFound
}

func (r *AuthorRepo) ListByLastName(_ context.Context, lastName string) ([]author.Author, error) {
	var out []author.Author
	for _, a := range r.All() {
		if a.LastName == lastName {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AuthorRepo) FindByName(_ context.Context, firstName, lastName string) (author.Author, error) {
	for _, a := range r.All() {
		if a.FirstName == firstName && a.LastName == lastName {
			return a, nil
		}
	}
	return author.Author{}, catalog.ErrNotFound
}

func (r *AuthorRepo) InsertIfAbsent(_ context.Context, a *author.Author) (catalog.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(a.FirstName, a.LastName, 0) {
		return catalog.Conflict, nil
	}
	r.insert(a)
	return catalog.Created, nil
}

func (r *AuthorRepo) Create(_ context.Context, a *author.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(a.FirstName, a.LastName, 0) {
		return catalog.ErrDuplicate
	}
	r.insert(a)
	return nil
}

func (r *AuthorRepo) Update(_ context.Context, a *author.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(a.FirstName, a.LastName, a.ID) {
		return catalog.ErrDuplicate
	}
	for i := range r.rows {
		if r.rows[i].ID == a.ID {
			r.rows[i] = *a
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (r *AuthorRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (r *AuthorRepo) taken(first, last string, except int64) bool {
	for _, a := range r.rows {
		if a.ID != except && a.FirstName == first && a.LastName == last {
			return true
		}
	}
	return false
}

func (r *AuthorRepo) insert(a *author.Author) {
	r.nextID++
	a.ID = r.nextID
	r.rows = append(r.rows, *a)
}

// LanguageRepo is an in-memory language.Repository with a unique code.
type LanguageRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []language.Language
	// InUse reports whether a language is referenced; Delete fails with
	// catalog.ErrInUse when it returns true.
	InUse func(id int64) bool
}

func NewLanguageRepo(seed ...language.Language) *LanguageRepo {
	r := &LanguageRepo{}
	for _, l := range seed {
		l := l
		_ = r.Create(context.Background(), &l)
	}
	return r
}

func (r *LanguageRepo) All() []language.Language {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]language.Language(nil), r.rows...)
}

func (r *LanguageRepo) List(_ context.Context) ([]language.Language, error) {
	out := r.All()
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *LanguageRepo) Get(_ context.Context, id int64) (language.Language, error) {
	for _, l := range r.All() {
		if l.ID == id {
			return l, nil
		}
	}
	return language.Language{}, catalog.ErrNotFound
}

func (r *LanguageRepo) FindByCode(_ context.Context, code string) (language.Language, error) {
	for _, l := range r.All() {
		if l.Code == code {
			return l, nil
		}
	}
	return language.Language{}, catalog.ErrNotFound
}

func (r *LanguageRepo) InsertIfAbsent(_ context.Context, l *language.Language) (catalog.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(l.Code, 0) {
		return catalog.Conflict, nil
	}
	r.insert(l)
	return catalog.Created, nil
}

func (r *LanguageRepo) Create(_ context.Context, l *language.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(l.Code, 0) {
		return catalog.ErrDuplicate
	}
	r.insert(l)
	return nil
}

func (r *LanguageRepo) Update(_ context.Context, l *language.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(l.Code, l.ID) {
		return catalog.ErrDuplicate
	}
	for i := range r.rows {
		if r.rows[i].ID == l.ID {
			r.rows[i] = *l
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (r *LanguageRepo) Delete(_ context.Context, id int64) error {
	if r.InUse != nil && r.InUse(id) {
		return catalog.ErrInUse
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (r *LanguageRepo) taken(code string, except int64) bool {
	for _, l := range r.rows {
		if l.ID != except && l.Code == code {
			return true
		}
	}
	return false
}

func (r *LanguageRepo) insert(l *language.Language) {
	r.nextID++
	l.ID = r.nextID
	r.rows = append(r.rows, *l)
}

type storedBook struct {
	book      book.Book
	authorIDs []int64
}

// BookRepo is an in-memory book.Repository unique on (title, year,
// language). Authors and language codes are joined from the sibling repos.
type BookRepo struct {
	mu        sync.Mutex
	nextID    int64
	rows      []storedBook
	authors   *AuthorRepo
	languages *LanguageRepo
}

func NewBookRepo(authors *AuthorRepo, languages *LanguageRepo) *BookRepo {
	r := &BookRepo{authors: authors, languages: languages}
	languages.InUse = r.usesLanguage
	return r
}

func (r *BookRepo) usesLanguage(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.book.LanguageID == id {
			return true
		}
	}
	return false
}

// Count returns the number of stored books.
func (r *BookRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *BookRepo) snapshot() []storedBook {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]storedBook(nil), r.rows...)
}

func (r *BookRepo) hydrate(s storedBook) book.Book {
	b := s.book
	if l, err := r.languages.Get(context.Background(), b.LanguageID); err == nil {
		b.Language = l.Code
	}
	b.Authors = []author.Author{}
	for _, id := range s.authorIDs {
		if a, err := r.authors.Get(context.Background(), id); err == nil {
			b.Authors = append(b.Authors, a)
		}
	}
	return b
}

func (r *BookRepo) List(_ context.Context, q book.Query) ([]book.Book, int, error) {
	var out []book.Book
	for _, s := range r.snapshot() {
		b := r.hydrate(s)
		if matches(b, q) {
			out = append(out, b)
		}
	}
	total := len(out)
	return page(out, q.Limit, q.Offset), total, nil
}

func matches(b book.Book, q book.Query) bool {
	anyAuthor := func(pred func(a author.Author) bool) bool {
		for _, a := range b.Authors {
			if pred(a) {
				return true
			}
		}
		return false
	}
	year := *b.PublicationYear
	switch {
	case q.AuthorFirstName != "" && !anyAuthor(func(a author.Author) bool { return strings.EqualFold(a.FirstName, q.AuthorFirstName) }):
		return false
	case q.AuthorSecondName != "" && !anyAuthor(func(a author.Author) bool {
		return strings.Contains(strings.ToLower(a.SecondName), strings.ToLower(q.AuthorSecondName))
	}):
		return false
	case q.AuthorLastName != "" && !anyAuthor(func(a author.Author) bool { return strings.EqualFold(a.LastName, q.AuthorLastName) }):
		return false
	case q.Language != "" && !strings.EqualFold(b.Language, q.Language):
		return false
	case q.Title != "" && !strings.EqualFold(b.Title, q.Title):
		return false
	case q.TitleContains != "" && !strings.Contains(b.Title, q.TitleContains):
		return false
	case q.YearMin != nil && year < *q.YearMin:
		return false
	case q.YearMax != nil && year > *q.YearMax:
		return false
	}
	return true
}

func (r *BookRepo) Get(_ context.Context, id int64) (book.Book, error) {
	for _, s := range r.snapshot() {
		if s.book.ID == id {
			return r.hydrate(s), nil
		}
	}
	return book.Book{}, catalog.ErrNotFound
}

func (r *BookRepo) Create(ctx context.Context, b *book.Book, authorIDs []int64) error {
	if err := r.checkRefs(ctx, b.LanguageID, authorIDs); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(b, 0) >= 0 {
		return catalog.ErrDuplicate
	}
	r.insert(b, authorIDs)
	return nil
}

func (r *BookRepo) Update(ctx context.Context, b *book.Book, authorIDs []int64) error {
	if err := r.checkRefs(ctx, b.LanguageID, authorIDs); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(b, b.ID) >= 0 {
		return catalog.ErrDuplicate
	}
	for i := range r.rows {
		if r.rows[i].book.ID == b.ID {
			r.rows[i] = storedBook{book: *b, authorIDs: dedupe(authorIDs)}
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (r *BookRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].book.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (r *BookRepo) CreateIfAbsent(ctx context.Context, b *book.Book, authorIDs []int64) (catalog.Outcome, error) {
	if err := r.checkRefs(ctx, b.LanguageID, authorIDs); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.find(b, 0); i >= 0 {
		b.ID = r.rows[i].book.ID
		return catalog.Found, nil
	}
	r.insert(b, authorIDs)
	return catalog.Created, nil
}

func (r *BookRepo) checkRefs(ctx context.Context, languageID int64, authorIDs []int64) error {
	if _, err := r.languages.Get(ctx, languageID); err != nil {
		return catalog.ErrInvalidReference
	}
	for _, id := range authorIDs {
		if _, err := r.authors.Get(ctx, id); err != nil {
			return catalog.ErrInvalidReference
		}
	}
	return nil
}

func (r *BookRepo) find(b *book.Book, except int64) int {
	for i, s := range r.rows {
		if s.book.ID != except && s.book.Title == b.Title &&
			*s.book.PublicationYear == *b.PublicationYear && s.book.LanguageID == b.LanguageID {
			return i
		}
	}
	return -1
}

func (r *BookRepo) insert(b *book.Book, authorIDs []int64) {
	r.nextID++
	b.ID = r.nextID
	stored := *b
	stored.Authors = nil
	r.rows = append(r.rows, storedBook{book: stored, authorIDs: dedupe(authorIDs)})
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// RunRepo is an in-memory ingest.Repository.
type RunRepo struct {
	mu   sync.Mutex
	runs []ingest.Run
}

func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

func (r *RunRepo) CreateRun(_ context.Context, run *ingest.Run) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run.ID = uuid.NewString()
	r.runs = append(r.runs, *run)
	return run.ID, nil
}

func (r *RunRepo) UpdateRun(_ context.Context, run *ingest.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.runs {
		if r.runs[i].ID == run.ID {
			r.runs[i] = *run
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (r *RunRepo) ListRuns(_ context.Context, limit int) ([]ingest.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ingest.Run, 0, len(r.runs))
	for i := len(r.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.runs[i])
	}
	return out, nil
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// Store wires the in-memory repositories together.
type Store struct {
	Authors   *AuthorRepo
	Languages *LanguageRepo
	Books     *BookRepo
	Runs      *RunRepo
}

func NewStore() *Store {
	authors := NewAuthorRepo()
	languages := NewLanguageRepo()
	return &Store{
		Authors:   authors,
		Languages: languages,
		Books:     NewBookRepo(authors, languages),
		Runs:      NewRunRepo(),
	}
}
