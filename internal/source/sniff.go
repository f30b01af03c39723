package source

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// HeaderSize is how many leading bytes DetectKind needs.
const HeaderSize = 261

var (
	htmlExtensions = map[string]struct{}{".html": {}, ".htm": {}, ".xhtml": {}, ".shtml": {}}
	jsExtensions   = map[string]struct{}{".js": {}, ".mjs": {}, ".cjs": {}, ".jsx": {}}
)

// DetectKind classifies an input by its header bytes, falling back to the
// file extension for text formats the magic numbers cannot tell apart.
func DetectKind(name string, head []byte) Kind {
	if filetype.Is(head, "pdf") {
		return KindPDF
	}
	if filetype.IsImage(head) || filetype.IsArchive(head) || filetype.IsVideo(head) ||
		filetype.IsAudio(head) || filetype.IsFont(head) {
		return KindBinary
	}
	if !hasUTF16BOM(head) && bytes.IndexByte(head, 0) >= 0 {
		return KindBinary
	}

	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := htmlExtensions[ext]; ok {
		return KindHTML
	}
	if _, ok := jsExtensions[ext]; ok {
		return KindJavaScript
	}
	if looksLikeHTML(head) {
		return KindHTML
	}
	return KindText
}

func looksLikeHTML(head []byte) bool {
	trimmed := bytes.ToLower(bytes.TrimSpace(bytes.TrimPrefix(head, utf8BOM)))
	return bytes.HasPrefix(trimmed, []byte("<!doctype html")) || bytes.HasPrefix(trimmed, []byte("<html"))
}
