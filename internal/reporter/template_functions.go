package reporter

import (
	"html/template"
	"strings"
	"time"
	"unicode"
)

// titleCase converts "URL_ADDRESS" style names to "Url Address".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// templateFunctions returns the functions available to report templates.
func templateFunctions() template.FuncMap {
	return template.FuncMap{
		"ToLower": strings.ToLower,
		"title":   titleCase,
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "N/A"
			}
			return t.Format(timeLayout)
		},
		"inc": func(i int) int {
			return i + 1
		},
	}
}
