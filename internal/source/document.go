package source

// Kind is the detected format of an input document.
type Kind string

const (
	KindText       Kind = "text"
	KindHTML       Kind = "html"
	KindJavaScript Kind = "javascript"
	KindPDF        Kind = "pdf"
	KindBinary     Kind = "binary"
)

// Document is decoded, scan-ready text together with where it came from.
type Document struct {
	Source string
	Kind   Kind
	Text   string
	// Size is the number of raw bytes read.
	Size int64
}

// StdinSource names documents read from standard input.
const StdinSource = "-"
