package main

import (
	"testing"
	"unicode/utf8"
)

func TestLanguageNames_FitSchema(t *testing.T) {
	for code, name := range languageNames {
		if len(code) == 0 || len(code) > 10 {
			t.Errorf("code %q does not fit languages.code", code)
		}
		if name == "" || utf8.RuneCountInString(name) > 50 {
			t.Errorf("name %q for %q does not fit languages.name", name, code)
		}
	}
}
