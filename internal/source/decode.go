package source

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

func hasUTF16BOM(b []byte) bool {
	return bytes.HasPrefix(b, utf16LEBOM) || bytes.HasPrefix(b, utf16BEBOM)
}

// DecodeText turns raw bytes into UTF-8. A BOM selects UTF-8 or UTF-16;
// otherwise valid UTF-8 is kept, then GBK is tried, then Windows-1252.
func DecodeText(content []byte) string {
	switch {
	case bytes.HasPrefix(content, utf8BOM):
		return strings.ToValidUTF8(string(content[len(utf8BOM):]), "�")
	case bytes.HasPrefix(content, utf16LEBOM):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), content[2:])
	case bytes.HasPrefix(content, utf16BEBOM):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), content[2:])
	}

	if utf8.Valid(content) {
		return string(content)
	}
	if decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), content); err == nil && utf8.Valid(decoded) &&
		!bytes.ContainsRune(decoded, utf8.RuneError) {
		return string(decoded)
	}
	return decodeWith(charmap.Windows1252, content)
}

func decodeWith(enc encoding.Encoding, content []byte) string {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return strings.ToValidUTF8(string(content), "�")
	}
	return string(decoded)
}
