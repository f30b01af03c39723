package source

import (
	"context"
	"io"
	"strings"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/ledongthuc/pdf"
)

// ExtractPDFText returns the plain text of at most maxPages pages. Pages
// whose text cannot be decoded are skipped. maxPages <= 0 reads all pages.
func ExtractPDFText(ctx context.Context, r io.ReaderAt, size int64, maxPages int) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", common.WrapError(err, "failed to open PDF")
	}

	total := reader.NumPage()
	if maxPages > 0 && total > maxPages {
		total = maxPages
	}

	var sb strings.Builder
	for i := 1; i <= total; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
