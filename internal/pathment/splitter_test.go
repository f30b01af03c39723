package pathment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWebURL_Boundaries(t *testing.T) {
	t.Run("bare registrable domain", func(t *testing.T) {
		w, err := SplitWebURL("https://example.com")
		require.NoError(t, err)

		assert.Equal(t, "https", w.Protocol)
		assert.Equal(t, "example.com", w.Host())
		assert.Empty(t, w.Subdomain)
		assert.False(t, w.HasPort())
		assert.Empty(t, w.Path)
	})

	t.Run("all components", func(t *testing.T) {
		w, err := SplitWebURL("https://www.example.co.uk:8080/a?b=1#c")
		require.NoError(t, err)

		assert.Equal(t, "www", w.Subdomain)
		assert.Equal(t, "example.co.uk", w.Domain)
		assert.Equal(t, 8080, w.Port)
		assert.Equal(t, "/a", w.Path)
		assert.Equal(t, "b=1", w.Query)
		assert.Equal(t, "c", w.Fragment)
	})
}

func TestSplitWebURL_HostsWithoutSubdomain(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		domain string
		port   int
	}{
		{name: "localhost with port", input: "http://localhost:3000/api", domain: "localhost", port: 3000},
		{name: "ipv4", input: "http://192.168.0.1/status", domain: "192.168.0.1", port: NoPort},
		{name: "ipv6 literal", input: "http://[::1]:8080", domain: "[::1]", port: 8080},
		{name: "country code second level", input: "https://bbc.co.uk", domain: "bbc.co.uk", port: NoPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := SplitWebURL(tt.input)
			require.NoError(t, err)
			assert.Empty(t, w.Subdomain)
			assert.Equal(t, tt.domain, w.Domain)
			assert.Equal(t, tt.port, w.Port)
		})
	}
}

func TestSplitWebURL_Errors(t *testing.T) {
	_, err := SplitWebURL("   ")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = SplitWebURL("https://")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = SplitWebURL("not a url at all")
	var splitErr *SplitError
	require.True(t, errors.As(err, &splitErr))
	assert.Equal(t, "split web url", splitErr.Op)
}

func TestSplitWebURL_RoundTrip(t *testing.T) {
	urls := []string{
		"https://example.com/path/to/page",
		"http://sub.example.org:8080/a/b?x=1&y=2#frag",
		"ftp://files.example.net/pub/file.tar.gz",
		"https://docs.example.io/search?q=go+lang&page=2",
		"http://localhost:8080/health",
	}

	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			w, err := SplitWebURL(u)
			require.NoError(t, err)
			w, err = ValidateAndFinalizeWebURL(w)
			require.NoError(t, err)

			assert.Equal(t, u, w.DisplayString())
			assert.Equal(t, u, w.ToURIString())
		})
	}
}

func TestWebURL_EncodedAndDecodedForms(t *testing.T) {
	w, err := SplitWebURL("https://bücher.de/katalog/neue%20bücher")
	require.NoError(t, err)
	w, err = ValidateAndFinalizeWebURL(w)
	require.NoError(t, err)

	assert.Equal(t, "/katalog/neue bücher", w.Path)
	assert.Equal(t, "https://bücher.de/katalog/neue bücher", w.DisplayString())
	assert.Equal(t, "https://xn--bcher-kva.de/katalog/neue%20b%C3%BCcher", w.ToURIString())
	assert.Equal(t, "bücher.de/katalog/neue bücher", w.AddressWithoutProtocol())
}

func TestWebURL_ReservedEscapesSurviveRoundTrip(t *testing.T) {
	for _, u := range []string{
		"https://example.com/a%2Fb",
		"https://example.com/files/what%3Fnow/x%2Fy.txt",
	} {
		t.Run(u, func(t *testing.T) {
			w, err := SplitWebURL(u)
			require.NoError(t, err)
			w, err = ValidateAndFinalizeWebURL(w)
			require.NoError(t, err)

			assert.Equal(t, u, w.ToURIString())
			again, err := SplitWebURL(w.ToURIString())
			require.NoError(t, err)
			assert.Equal(t, w, again)
		})
	}

	w, err := SplitWebURL("https://example.com/a%2Fb")
	require.NoError(t, err)
	assert.Equal(t, "/a/b", w.Path)
	assert.Equal(t, "/a%2Fb", w.RawPath)
	assert.NotEqual(t,
		ParseSingle("https://example.com/a%2Fb").CanonicalAddress(CanonicalOptions{}),
		ParseSingle("https://example.com/a/b").CanonicalAddress(CanonicalOptions{}))
}

func TestSplitWebURL_UserInfo(t *testing.T) {
	w, err := SplitWebURL("ftp://user:pw@ftp.example.org:21/pub")
	require.NoError(t, err)
	w, err = ValidateAndFinalizeWebURL(w)
	require.NoError(t, err)

	assert.Equal(t, "user:pw", w.UserInfo)
	assert.Equal(t, "ftp", w.Subdomain)
	assert.Equal(t, "example.org", w.Domain)
	assert.Equal(t, 21, w.Port)
	assert.Equal(t, "ftp://user:pw@ftp.example.org:21/pub", w.ToURIString())
	assert.Equal(t, "ftp://ftp.example.org:21/pub", ParseSingle("ftp://user:pw@ftp.example.org:21/pub").CanonicalAddress(CanonicalOptions{}))
}

func TestValidateAndFinalizeWebURL_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "underscore in host", input: "https://my_host.example.com"},
		{name: "port out of range", input: "https://example.com:70000"},
		{name: "invalid dotted quad", input: "http://999.1.1.1"},
		{name: "numeric top level domain", input: "http://version.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := SplitWebURL(tt.input)
			require.NoError(t, err)
			_, err = ValidateAndFinalizeWebURL(w)
			assert.Error(t, err)
		})
	}

	_, err := ValidateAndFinalizeWebURL(WebURL{Subdomain: "www", Port: NoPort})
	assert.Error(t, err, "subdomain without a host is still blank")
}

func TestSplitFilePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected FilePath
	}{
		{
			name:  "windows drive path",
			input: `C:\Users\a\doc.txt`,
			expected: FilePath{
				Drive: "C:", Directories: "/Users/a/", Filename: "doc", Extension: "txt", Backslash: true,
			},
		},
		{
			name:     "drive only",
			input:    `D:`,
			expected: FilePath{Drive: "D:", Directories: "/"},
		},
		{
			name:  "file uri",
			input: "file:///home/user/notes.md",
			expected: FilePath{
				SchemeFound: true, Directories: "/home/user/", Filename: "notes", Extension: "md",
			},
		},
		{
			name:  "file uri with drive and escapes",
			input: "file:///C:/Program%20Files/app.exe",
			expected: FilePath{
				SchemeFound: true, Drive: "C:", Directories: "/Program Files/", Filename: "app", Extension: "exe",
			},
		},
		{
			name:     "dot file",
			input:    "/home/user/.bashrc",
			expected: FilePath{Directories: "/home/user/", Filename: ".bashrc"},
		},
		{
			name:  "unc",
			input: `\\server\share\file.txt`,
			expected: FilePath{
				Directories: "//server/share/", Filename: "file", Extension: "txt", Backslash: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := SplitFilePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}

	_, err := SplitFilePath("")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestFilePath_Reconstruction(t *testing.T) {
	f, err := SplitFilePath(`C:\Users\a\doc.txt`)
	require.NoError(t, err)
	assert.Equal(t, `C:\Users\a\doc.txt`, f.PathWithoutProtocol())
	assert.Equal(t, `C:\Users\a\doc.txt`, f.FullPath())
	assert.Equal(t, "file:///C:/Users/a/doc.txt", f.URI())

	f, err = SplitFilePath("file:///home/user/my notes.md")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/my notes.md", f.PathWithoutProtocol())
	assert.Equal(t, "file:///home/user/my notes.md", f.FullPath())
	assert.Equal(t, "file:///home/user/my%20notes.md", f.URI())

	f, err = SplitFilePath(`\\server\share\file.txt`)
	require.NoError(t, err)
	assert.Equal(t, "file://server/share/file.txt", f.URI())
}

func TestDetectProtocol(t *testing.T) {
	tests := []struct {
		input    string
		expected TransferProtocol
	}{
		{"https://example.com", ProtocolHTTPS},
		{"HTTP://EXAMPLE.COM", ProtocolHTTP},
		{"ftp://files.example.com", ProtocolFTP},
		{"ssh://git.example.com", ProtocolSSH},
		{"telnet://bbs.example.com", ProtocolTelnet},
		{"mailto:user@example.com", ProtocolMailto},
		{"file:///tmp/a.txt", ProtocolFile},
		{`file:C:\My Docs\a.txt`, ProtocolMalformedFile},
		{"file://", ProtocolMalformedFile},
		{`C:\Windows`, ProtocolLocalFile},
		{"c:/temp", ProtocolLocalFile},
		{"/usr/bin/env", ProtocolLocalFile},
		{`\\server\share`, ProtocolUNC},
		{"//server/share", ProtocolUNC},
		{"./main.go", ProtocolRelative},
		{`..\up.txt`, ProtocolRelative},
		{"example.com", ProtocolNone},
		{"gopher://old.example.com", ProtocolNone},
		{"", ProtocolNone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectProtocol(tt.input))
		})
	}
}
