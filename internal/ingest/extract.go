package ingest

import (
	"strconv"
	"strings"

	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/googlebooks"
)

const isbn13Type = "ISBN_13"

// ExtractTitle joins title and subtitle as "title: subtitle".
func ExtractTitle(v googlebooks.VolumeInfo) (string, bool) {
	if v.Title == nil {
		return "", false
	}
	if v.Subtitle != nil && *v.Subtitle != "" {
		return *v.Title + ": " + *v.Subtitle, true
	}
	return *v.Title, true
}

// ExtractPublicationYear reads the year from publishedDate, which may be a
// bare year or a full date.
func ExtractPublicationYear(v googlebooks.VolumeInfo) (int, bool) {
	if v.PublishedDate == nil {
		return 0, false
	}
	segment, _, _ := strings.Cut(*v.PublishedDate, "-")
	year, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return year, true
}

func ExtractPageCount(v googlebooks.VolumeInfo) (int, bool) {
	if v.PageCount == nil {
		return 0, false
	}
	return *v.PageCount, true
}

func ExtractCoverLink(v googlebooks.VolumeInfo) (string, bool) {
	if v.ImageLinks == nil || v.ImageLinks.Thumbnail == nil {
		return "", false
	}
	return *v.ImageLinks.Thumbnail, true
}

// ExtractISBN returns the first ISBN_13 identifier. ISBN_10 entries are
// ignored.
func ExtractISBN(v googlebooks.VolumeInfo) (int64, bool) {
	for _, id := range v.IndustryIdentifiers {
		if id.Type != isbn13Type {
			continue
		}
		n, err := strconv.ParseInt(id.Identifier, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func ExtractLanguageCode(v googlebooks.VolumeInfo) string {
	if v.Language == nil {
		return ""
	}
	return *v.Language
}

func ExtractAuthors(v googlebooks.VolumeInfo) []string {
	return v.Authors
}

// DraftFrom collects the extracted scalar fields of one volume.
func DraftFrom(v googlebooks.VolumeInfo) book.Draft {
	var d book.Draft
	d.Title, _ = ExtractTitle(v)
	if year, ok := ExtractPublicationYear(v); ok {
		d.PublicationYear = &year
	}
	if isbn, ok := ExtractISBN(v); ok {
		d.ISBN = &isbn
	}
	if pages, ok := ExtractPageCount(v); ok {
		d.PageCount = &pages
	}
	if link, ok := ExtractCoverLink(v); ok {
		d.CoverLink = &link
	}
	return d
}
