package author

import "strings"

type Author struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name" validate:"max=50"`
	SecondName string `json:"second_name" validate:"max=100"`
	LastName   string `json:"last_name" validate:"required,max=50"`
}

// FullName joins the non-empty name parts with single spaces.
func (a Author) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.FirstName, a.SecondName, a.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Query filters the author list.
type Query struct {
	LastName string
	Limit    int
	Offset   int
}
