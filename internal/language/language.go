package language

// Language is identified by its code as reported by the data source
// (usually ISO-639-1). Name is a display label and may be empty.
type Language struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"max=50"`
	Code string `json:"code" validate:"max=10"`
}
