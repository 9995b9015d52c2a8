package author

import (
	"strings"
	"unicode/utf8"
)

// Name is a raw author string split into its parts.
type Name struct {
	First  string
	Second string
	Last   string
}

// ParseName splits "First [Middle...] Last" on whitespace. A single token is
// taken as the last name. It returns false when raw holds no tokens.
func ParseName(raw string) (Name, bool) {
	tokens := strings.Fields(raw)
	switch len(tokens) {
	case 0:
		return Name{}, false
	case 1:
		return Name{Last: tokens[0]}, true
	}
	return Name{
		First:  tokens[0],
		Second: strings.Join(tokens[1:len(tokens)-1], " "),
		Last:   tokens[len(tokens)-1],
	}, true
}

// Match picks the existing author a parsed name refers to. Candidates must
// already share the last name and be ordered by id; the first one whose first
// name starts with the same letter wins. Distinct people sharing an initial
// and a last name are merged.
func Match(n Name, sameLastName []Author) (Author, bool) {
	want := initial(n.First)
	for _, a := range sameLastName {
		if a.LastName == n.Last && initial(a.FirstName) == want {
			return a, true
		}
	}
	return Author{}, false
}

// initial returns the first letter of s, or "" for an empty name.
func initial(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}
