package book

import (
	"bookcatalog/internal/author"
	"bookcatalog/internal/catalog"
)

// Draft holds the scalar fields of a book before its language and authors
// are resolved.
type Draft struct {
	Title           string  `json:"title" validate:"required,max=150"`
	PublicationYear *int    `json:"publication_year" validate:"required,gte=0,lte=2099"`
	ISBN            *int64  `json:"isbn" validate:"omitempty,isbn_digits"`
	PageCount       *int    `json:"page_count" validate:"omitempty,gte=0,lte=50000"`
	CoverLink       *string `json:"cover_link" validate:"omitempty,max=200,url"`
}

// Validate checks the draft's field constraints.
func (d Draft) Validate() error {
	return catalog.Validate("book", d)
}

// Book is unique on (title, publication year, language).
type Book struct {
	ID int64 `json:"id"`
	Draft
	LanguageID int64           `json:"language_id" validate:"gt=0"`
	Language   string          `json:"language"`
	Authors    []author.Author `json:"authors"`
}

// Query defines filters and pagination for listing books. Empty strings
// and nil bounds mean "no filter".
type Query struct {
	AuthorFirstName  string // case-insensitive exact
	AuthorSecondName string // case-insensitive contains
	AuthorLastName   string // case-insensitive exact
	Language         string // language code, case-insensitive exact
	Title            string // case-insensitive exact
	TitleContains    string // case-sensitive contains
	YearMin          *int
	YearMax          *int
	Limit            int
	Offset           int
}
