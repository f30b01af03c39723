package pathment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_PriorityAndOrder(t *testing.T) {
	text := "see https://a.example.com/x, mail bob@example.org or www.test.org; " +
		"path /usr/local/bin/run.sh and 10.0.0.1:22 or localhost"

	expected := []string{
		"https://a.example.com/x,",
		"bob@example.org",
		"www.test.org;",
		"/usr/local/bin/run.sh",
		"10.0.0.1:22",
		"localhost",
	}
	assert.Equal(t, expected, Tokenize(text))
}

func TestTokenize_Matchers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "scheme url beats hostname", text: "go to https://example.com now", expected: []string{"https://example.com"}},
		{name: "mailto", text: "write to mailto:a@example.com?subject=x", expected: []string{"mailto:a@example.com?subject=x"}},
		{name: "windows path", text: `open C:\temp\log.txt please`, expected: []string{`C:\temp\log.txt`}},
		{name: "unc path", text: `share \\fs01\public\a.doc here`, expected: []string{`\\fs01\public\a.doc`}},
		{name: "relative path", text: "run ./scripts/build.sh first", expected: []string{"./scripts/build.sh"}},
		{name: "file uri", text: "at file:///tmp/x.log", expected: []string{"file:///tmp/x.log"}},
		{name: "hostname with path", text: "clone github.com/org/repo today", expected: []string{"github.com/org/repo"}},
		{name: "ip not cut from longer number", text: "id 1.2.3.4.5", expected: []string{"1.2.3.4.5"}},
		{name: "ip with port", text: "host 10.1.2.3:8080.", expected: []string{"10.1.2.3:8080"}},
		{name: "dotted version", text: "release 1.2.3 is out", expected: []string{"1.2.3"}},
		{name: "scheme after plus", text: "clone git+https://github.com/a/b.git today", expected: []string{"https://github.com/a/b.git"}},
		{name: "svn over ssh", text: "co svn+ssh://svn.example.org/trunk now", expected: []string{"ssh://svn.example.org/trunk"}},
		{name: "unknown scheme kept whole", text: "get sftp://host.example.com/data.csv now", expected: []string{"sftp://host.example.com/data.csv"}},
		{name: "bucket url kept whole", text: "copy s3://bucket/key.json", expected: []string{"s3://bucket/key.json"}},
		{name: "no candidates", text: "nothing to see here", expected: nil},
		{name: "empty", text: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.text))
		})
	}
}

func TestTokenizer_CandidatesStopsEarly(t *testing.T) {
	tok := NewTokenizer()
	var got []string
	for c := range tok.Candidates("a.com b.org c.net") {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.com", "b.org"}, got)
}
