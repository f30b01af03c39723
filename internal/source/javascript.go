package source

import (
	"strings"

	"github.com/BishopFox/jsluice"
)

// ExtractJavaScriptURLs returns the URL-like strings jsluice finds in
// JavaScript source, including ones assembled by concatenation or passed to
// fetch and XMLHttpRequest calls.
func ExtractJavaScriptURLs(content []byte) []string {
	analyzer := jsluice.NewAnalyzer(content)

	var urls []string
	seen := make(map[string]struct{})
	for _, found := range analyzer.GetURLs() {
		u := strings.TrimSpace(found.URL)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}
