package googlebooks

// VolumesResponse matches the volumes list endpoint. Only the fields the
// importer reads are declared; every optional field is a pointer or a slice
// so a missing key is distinguishable from a zero value.
type VolumesResponse struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title               *string              `json:"title"`
	Subtitle            *string              `json:"subtitle"`
	Authors             []string             `json:"authors"`
	PageCount           *int                 `json:"pageCount"`
	PublishedDate       *string              `json:"publishedDate"`
	Language            *string              `json:"language"`
	ImageLinks          *ImageLinks          `json:"imageLinks"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

type ImageLinks struct {
	SmallThumbnail *string `json:"smallThumbnail"`
	Thumbnail      *string `json:"thumbnail"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}
