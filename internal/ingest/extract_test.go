package ingest

import (
	"encoding/json"
	"testing"

	"bookcatalog/internal/platform/googlebooks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volume(t *testing.T, raw string) googlebooks.VolumeInfo {
	t.Helper()
	var v googlebooks.VolumeInfo
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestExtractTitle(t *testing.T) {
	title, ok := ExtractTitle(volume(t, `{"title":"The Hobbit","subtitle":"An Unexpected Journey"}`))
	assert.True(t, ok)
	assert.Equal(t, "The Hobbit: An Unexpected Journey", title)

	title, ok = ExtractTitle(volume(t, `{"title":"Hobbit"}`))
	assert.True(t, ok)
	assert.Equal(t, "Hobbit", title)

	title, ok = ExtractTitle(volume(t, `{"title":"Hobbit","subtitle":""}`))
	assert.True(t, ok)
	assert.Equal(t, "Hobbit", title)

	_, ok = ExtractTitle(volume(t, `{"subtitle":"orphan"}`))
	assert.False(t, ok)
}

func TestExtractPublicationYear(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{`{"publishedDate":"2020-10-10"}`, 2020, true},
		{`{"publishedDate":"2018"}`, 2018, true},
		{`{"publishedDate":"1999-05"}`, 1999, true},
		{`{"publishedDate":"circa 1900"}`, 0, false},
		{`{"publishedDate":""}`, 0, false},
		{`{}`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			year, ok := ExtractPublicationYear(volume(t, tt.raw))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, year)
		})
	}
}

func TestExtractISBN(t *testing.T) {
	isbn, ok := ExtractISBN(volume(t, `{"industryIdentifiers":[{"type":"ISBN_10","identifier":"8372783301"},{"type":"ISBN_13","identifier":"1234567890123"}]}`))
	assert.True(t, ok)
	assert.Equal(t, int64(1234567890123), isbn)

	_, ok = ExtractISBN(volume(t, `{"industryIdentifiers":[{"type":"other","identifier":"UOM:39015"}]}`))
	assert.False(t, ok)

	_, ok = ExtractISBN(volume(t, `{"industryIdentifiers":[{"type":"ISBN_10","identifier":"8372783301"}]}`))
	assert.False(t, ok, "ISBN_10 is never used")

	_, ok = ExtractISBN(volume(t, `{"industryIdentifiers":[{"type":"ISBN_13","identifier":"978-83-7278"}]}`))
	assert.False(t, ok)
}

func TestExtractOptionalFieldsAbsent(t *testing.T) {
	v := volume(t, `{"title":"Hobbit","publishedDate":"1937"}`)

	_, ok := ExtractPageCount(v)
	assert.False(t, ok)
	_, ok = ExtractCoverLink(v)
	assert.False(t, ok)
	_, ok = ExtractISBN(v)
	assert.False(t, ok)
	assert.Equal(t, "", ExtractLanguageCode(v))
	assert.Empty(t, ExtractAuthors(v))

	_, ok = ExtractCoverLink(volume(t, `{"imageLinks":{"smallThumbnail":"http://x/s"}}`))
	assert.False(t, ok)

	d := DraftFrom(v)
	assert.Equal(t, "Hobbit", d.Title)
	assert.Equal(t, 1937, *d.PublicationYear)
	assert.Nil(t, d.ISBN)
	assert.Nil(t, d.PageCount)
	assert.Nil(t, d.CoverLink)
}

func TestDraftFrom_AllFields(t *testing.T) {
	v := volume(t, `{
		"title": "Dziady",
		"authors": ["Adam Mickiewicz"],
		"publishedDate": "2008",
		"pageCount": 0,
		"language": "pl",
		"imageLinks": {"thumbnail": "http://books.google.com/books/content?id=abc"},
		"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9788372783301"}]
	}`)

	d := DraftFrom(v)
	require.NotNil(t, d.PageCount)
	assert.Equal(t, 0, *d.PageCount)
	assert.Equal(t, int64(9788372783301), *d.ISBN)
	assert.Equal(t, "http://books.google.com/books/content?id=abc", *d.CoverLink)
	assert.Equal(t, "pl", ExtractLanguageCode(v))
	assert.Equal(t, []string{"Adam Mickiewicz"}, ExtractAuthors(v))
	assert.NoError(t, d.Validate())
}
