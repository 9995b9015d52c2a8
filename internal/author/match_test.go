package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		raw  string
		want Name
		ok   bool
	}{
		{"Adam Mickiewicz", Name{First: "Adam", Last: "Mickiewicz"}, true},
		{"Hans Christian Andersen", Name{First: "Hans", Second: "Christian", Last: "Andersen"}, true},
		{"  John  Ronald Reuel   Tolkien ", Name{First: "John", Second: "Ronald Reuel", Last: "Tolkien"}, true},
		{"Homer", Name{Last: "Homer"}, true},
		{"", Name{}, false},
		{"   ", Name{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseName(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch(t *testing.T) {
	andersen := Author{ID: 1, FirstName: "Hans", SecondName: "Christian", LastName: "Andersen"}
	henryk := Author{ID: 2, FirstName: "Henryk", LastName: "Sienkiewicz"}
	homer := Author{ID: 3, LastName: "Homer"}

	t.Run("same initial merges", func(t *testing.T) {
		got, ok := Match(Name{First: "Hans", Second: "Ch.", Last: "Andersen"}, []Author{andersen})
		assert.True(t, ok)
		assert.Equal(t, andersen, got)
	})

	t.Run("literal first letter rule", func(t *testing.T) {
		got, ok := Match(Name{First: "Henrietta", Last: "Sienkiewicz"}, []Author{henryk})
		assert.True(t, ok)
		assert.Equal(t, henryk, got)
	})

	t.Run("different initial", func(t *testing.T) {
		_, ok := Match(Name{First: "Jan", Last: "Andersen"}, []Author{andersen})
		assert.False(t, ok)
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, ok := Match(Name{First: "hans", Last: "Andersen"}, []Author{andersen})
		assert.False(t, ok)
	})

	t.Run("empty first names match", func(t *testing.T) {
		got, ok := Match(Name{Last: "Homer"}, []Author{homer})
		assert.True(t, ok)
		assert.Equal(t, homer, got)
	})

	t.Run("first candidate wins", func(t *testing.T) {
		second := Author{ID: 9, FirstName: "Hugo", LastName: "Andersen"}
		got, ok := Match(Name{First: "Hans", Last: "Andersen"}, []Author{andersen, second})
		assert.True(t, ok)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("multibyte initial", func(t *testing.T) {
		zofia := Author{ID: 4, FirstName: "Żaneta", LastName: "Kowalska"}
		_, ok := Match(Name{First: "Zofia", Last: "Kowalska"}, []Author{zofia})
		assert.False(t, ok)
		_, ok = Match(Name{First: "Żywia", Last: "Kowalska"}, []Author{zofia})
		assert.True(t, ok)
	})
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Hans Christian Andersen", Author{FirstName: "Hans", SecondName: "Christian", LastName: "Andersen"}.FullName())
	assert.Equal(t, "Homer", Author{LastName: "Homer"}.FullName())
}
