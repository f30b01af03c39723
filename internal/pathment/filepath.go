package pathment

import (
	"net/url"
	"strings"
)

// FilePath is the structural decomposition of a file system reference.
// Directories always use forward slashes and keep their trailing slash;
// Extension has no leading dot.
type FilePath struct {
	SchemeFound bool
	Drive       string
	Directories string
	Filename    string
	Extension   string
	// Backslash records that the source text used Windows separators.
	Backslash bool
}

// Name returns the file name including its extension.
func (f FilePath) Name() string {
	if f.Extension == "" {
		return f.Filename
	}
	return f.Filename + "." + f.Extension
}

// slashPath is the path with forward slashes and without any scheme.
func (f FilePath) slashPath() string {
	return f.Drive + f.Directories + f.Name()
}

// PathWithoutProtocol renders the path with the separator style of the source.
func (f FilePath) PathWithoutProtocol() string {
	p := f.slashPath()
	if f.Backslash {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return p
}

// FullPath is the file URI when the source carried a scheme and
// PathWithoutProtocol otherwise.
func (f FilePath) FullPath() string {
	if !f.SchemeFound {
		return f.PathWithoutProtocol()
	}
	return "file:" + f.schemePath()
}

// schemePath is the part of a file URI after "file:".
func (f FilePath) schemePath() string {
	p := f.slashPath()
	switch {
	case f.Drive != "":
		return "///" + p
	case strings.HasPrefix(p, "//"):
		return p
	case strings.HasPrefix(p, "/"):
		return "//" + p
	}
	return p
}

// URI returns a percent-encoded form suitable for opening the file.
func (f FilePath) URI() string {
	p := f.slashPath()
	switch {
	case f.Drive != "":
		return (&url.URL{Scheme: "file", Path: "/" + p}).String()
	case strings.HasPrefix(p, "//"):
		rest := strings.TrimPrefix(p, "//")
		host, path, _ := strings.Cut(rest, "/")
		return (&url.URL{Scheme: "file", Host: host, Path: "/" + path}).String()
	case strings.HasPrefix(p, "/"):
		return (&url.URL{Scheme: "file", Path: p}).String()
	}
	return (&url.URL{Path: p}).EscapedPath()
}

func (f FilePath) String() string {
	return f.FullPath()
}
