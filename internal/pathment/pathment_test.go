package pathment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortPathments_Buckets(t *testing.T) {
	email := ParseSingle("user@example.com")
	ip := ParseSingle("192.168.1.1")
	url := ParseSingle("https://example.com")

	orders := [][]*Pathment{
		{email, ip, url},
		{ip, url, email},
		{url, email, ip},
		{ip, email, url},
	}
	for _, ps := range orders {
		SortPathments(ps)
		assert.Equal(t, []Type{URLAddress, Email, IPAddress}, []Type{ps[0].Type(), ps[1].Type(), ps[2].Type()})
	}
}

func TestSortPathments_AllBuckets(t *testing.T) {
	ps := []*Pathment{
		NewUnspecified("x.y"),
		NewPrompt("summarize this"),
		NewHostname("example.com"),
		ParseSingle("/tmp/a.txt"),
		NewEmail("a@example.com"),
		ParseSingle("ftp://files.example.com"),
		NewExecCommand("ls -la"),
	}
	SortPathments(ps)

	got := make([]Type, 0, len(ps))
	for _, p := range ps {
		got = append(got, p.Type())
	}
	assert.Equal(t, []Type{FTPAddress, Email, LocalPath, Hostname, ExecCommand, Prompt, Unspecified}, got)
}

func TestSortPathments_CaseInsensitiveWithinBucket(t *testing.T) {
	ps := []*Pathment{NewHostname("b.example.com"), NewHostname("A.example.com"), NewHostname("c.example.com")}
	SortPathments(ps)
	assert.Equal(t, []string{"A.example.com", "b.example.com", "c.example.com"}, displays(ps))
}

func TestPathment_Equality(t *testing.T) {
	a := ParseSingle("https://Example.com/Docs")
	b := ParseSingle("https://example.com/docs")
	c := ParseSingle("http://example.com/docs")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(c), "protocol takes part in identity")
	assert.False(t, ParseSingle("example.com").Equal(ParseSingle("https://example.com")))

	a.SetTitle("custom")
	assert.True(t, a.Equal(b), "title is not part of identity")
}

func TestPathment_Clone(t *testing.T) {
	original := ParseSingle("https://www.example.com/a")
	clone := original.Clone()

	require.True(t, original.Equal(clone))
	clone.SetTitle("changed")
	assert.NotEqual(t, original.Title(), clone.Title())

	w1, _ := original.WebURL()
	w2, _ := clone.WebURL()
	assert.Equal(t, w1, w2)
	assert.Nil(t, (*Pathment)(nil).Clone())
}

func TestPathment_AddressForURI(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user@example.com", "mailto:user@example.com"},
		{"https://bücher.de/a b", "https://xn--bcher-kva.de/a%20b"},
		{`C:\Users\a\doc.txt`, "file:///C:/Users/a/doc.txt"},
		{`\\server\share\file.txt`, "file://server/share/file.txt"},
		{"192.168.1.1", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSingle(tt.input).AddressForURI())
		})
	}
}

func TestPathment_CanonicalAddress(t *testing.T) {
	p := ParseSingle("https://www.Example.com:8443/path?q=1#frag")
	require.Equal(t, URLAddress, p.Type())

	assert.Equal(t, "https://www.example.com:8443/path?q=1#frag", p.CanonicalAddress(CanonicalOptions{}))
	assert.Equal(t, "example.com:8443/path", p.CanonicalAddress(CanonicalOptions{
		ExcludeProtocol:  true,
		ExcludeSubdomain: true,
		ExcludeQuery:     true,
		ExcludeFragment:  true,
	}))
	assert.Equal(t, "https://www.example.com:8443/path#frag", p.CanonicalAddress(CanonicalOptions{ExcludeQuery: true}))

	assert.Equal(t, "c:/users/a/doc.txt", ParseSingle(`C:\Users\A\Doc.TXT`).CanonicalAddress(CanonicalOptions{}))
	assert.Equal(t, "User@Example.com", ParseSingle("User@Example.com").CanonicalAddress(CanonicalOptions{ExcludeProtocol: true}))
	assert.Equal(t,
		ParseSingle("https://example.com/").CanonicalAddress(CanonicalOptions{}),
		ParseSingle("https://example.com").CanonicalAddress(CanonicalOptions{}))
}

func TestPathment_PayloadMatchesType(t *testing.T) {
	inputs := []string{
		"https://example.com", "ssh://git.example.com", "user@example.com", "10.0.0.1",
		"example.com", "/tmp/a.txt", "file:///tmp/a.txt", `file:C:\bad path`, "hello",
	}
	for _, in := range inputs {
		p := ParseSingle(in)
		_, hasWeb := p.WebURL()
		_, hasFile := p.FilePath()

		assert.Equal(t, p.Type().IsWebBased(), hasWeb, in)
		assert.False(t, hasWeb && hasFile, in)
		if hasFile {
			assert.True(t, p.Type().IsFileBased(), in)
		}
	}
}

func TestTypeAndProtocolNames(t *testing.T) {
	for typ := Unspecified; typ <= Prompt; typ++ {
		assert.Equal(t, typ, ParseType(typ.String()))
	}
	for p := ProtocolNone; p <= ProtocolRelative; p++ {
		assert.Equal(t, p, ParseTransferProtocol(p.String()))
	}
	assert.Equal(t, Unspecified, ParseType("NOPE"))
	assert.Equal(t, URLAddress, ParseType("url_address"))
	assert.Equal(t, LocalPath, ParseType(" Local_Path "))
	assert.Equal(t, CategoryWeb, ProtocolSSH.Category())
	assert.Equal(t, CategoryMail, ProtocolMailto.Category())
	assert.Equal(t, CategoryFile, ProtocolMalformedFile.Category())
	assert.Equal(t, CategoryNone, ProtocolNone.Category())
}

func TestHeuristics(t *testing.T) {
	assert.True(t, IsKnownTLD("com"))
	assert.True(t, IsKnownTLD(".DE"))
	assert.True(t, IsKnownTLD("museum"))
	assert.True(t, IsKnownTLD("photography"), "public suffix fallback")
	assert.False(t, IsKnownTLD("notatld"))
	assert.False(t, IsKnownTLD(""))

	assert.True(t, IsCommonFileExtension("PDF"))
	assert.True(t, IsCommonFileExtension(".go"))
	assert.False(t, IsCommonFileExtension("com"))
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", TruncateTitle("short", 10))
	assert.Equal(t, "abcdefg...", TruncateTitle("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", TruncateTitle("abcdef", 2))
	assert.Equal(t, "ünï...", TruncateTitle("ünïcödé", 6))
}
