package book

import (
	"context"
	"errors"
	"testing"

	"bookcatalog/internal/catalog"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestDraftValidate(t *testing.T) {
	valid := Draft{
		Title:           "Hobbit",
		PublicationYear: intPtr(1937),
		ISBN:            int64Ptr(9788324400416),
		PageCount:       intPtr(310),
		CoverLink:       strPtr("http://books.google.com/books/content?id=1"),
	}
	require.NoError(t, valid.Validate())

	yearZero := valid
	yearZero.PublicationYear = intPtr(0)
	assert.NoError(t, yearZero.Validate(), "year 0 is inside the allowed range")

	tests := []struct {
		name    string
		mutate  func(d *Draft)
		message string
	}{
		{"missing title", func(d *Draft) { d.Title = "" }, "title is required"},
		{"long title", func(d *Draft) { d.Title = string(make([]byte, 151)) }, "title must be at most 150 characters"},
		{"missing year", func(d *Draft) { d.PublicationYear = nil }, "publication_year is required"},
		{"year too late", func(d *Draft) { d.PublicationYear = intPtr(2100) }, "publication_year must be at most 2099"},
		{"negative year", func(d *Draft) { d.PublicationYear = intPtr(-1) }, "publication_year must be at least 0"},
		{"short isbn", func(d *Draft) { d.ISBN = int64Ptr(978832) }, "isbn must have exactly 10 or 13 digits"},
		{"too many pages", func(d *Draft) { d.PageCount = intPtr(50001) }, "page_count must be at most 50000"},
		{"bad cover link", func(d *Draft) { d.CoverLink = strPtr("not a url") }, "cover_link must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)

			err := d.Validate()
			var ve *catalog.ValidationError
			require.True(t, errors.As(err, &ve))
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.message, ve.Fields[0].Message)
		})
	}
}

func TestService_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	ctx := context.Background()
	draft := Draft{Title: "Dziady", PublicationYear: intPtr(1832)}

	t.Run("created", func(t *testing.T) {
		mockRepo.EXPECT().
			CreateIfAbsent(ctx, gomock.Any(), []int64{7}).
			DoAndReturn(func(_ context.Context, b *Book, _ []int64) (catalog.Outcome, error) {
				assert.Equal(t, int64(3), b.LanguageID)
				b.ID = 11
				return catalog.Created, nil
			})

		b, outcome, err := svc.Upsert(ctx, draft, 3, []int64{7})
		require.NoError(t, err)
		assert.Equal(t, catalog.Created, outcome)
		assert.Equal(t, int64(11), b.ID)
	})

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().CreateIfAbsent(ctx, gomock.Any(), gomock.Any()).Return(catalog.Found, nil)

		_, outcome, err := svc.Upsert(ctx, draft, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, catalog.Found, outcome)
	})

	t.Run("invalid draft skips storage", func(t *testing.T) {
		_, _, err := svc.Upsert(ctx, Draft{Title: "x"}, 3, nil)
		assert.True(t, catalog.IsValidation(err))
	})

	t.Run("missing language", func(t *testing.T) {
		_, _, err := svc.Upsert(ctx, draft, 0, nil)
		assert.True(t, catalog.IsValidation(err))
	})

	t.Run("storage error", func(t *testing.T) {
		mockRepo.EXPECT().CreateIfAbsent(ctx, gomock.Any(), gomock.Any()).Return(catalog.Outcome(0), errors.New("db down"))

		_, _, err := svc.Upsert(ctx, draft, 3, nil)
		assert.EqualError(t, err, "db down")
	})
}
