package source

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/rs/zerolog"
)

// Loader reads input files and turns them into scan-ready Documents.
type Loader struct {
	config config.InputConfig
	logger zerolog.Logger
}

// NewLoader creates a Loader for the given input configuration.
func NewLoader(cfg config.InputConfig, logger zerolog.Logger) *Loader {
	return &Loader{
		config: cfg,
		logger: logger.With().Str("component", "SourceLoader").Logger(),
	}
}

// Discover expands paths and globs using the configured include and exclude
// patterns.
func (l *Loader) Discover(args []string) ([]string, error) {
	return Discover(args, l.config.Include, l.config.Exclude)
}

// Load reads and decodes one file.
func (l *Loader) Load(ctx context.Context, path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, common.NewInputError(path, "cannot stat input", err)
	}
	if info.IsDir() {
		return Document{}, common.NewInputError(path, "input is a directory", common.ErrUnsupportedInput)
	}
	if limit := l.config.MaxFileSizeBytes(); info.Size() > limit {
		return Document{}, common.NewInputError(path, "input exceeds size limit", common.ErrInputTooLarge)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, common.NewInputError(path, "cannot read input", err)
	}
	return l.decode(ctx, path, content)
}

// LoadReader reads a document from r, e.g. standard input. The size limit
// applies to the bytes read.
func (l *Loader) LoadReader(ctx context.Context, name string, r io.Reader) (Document, error) {
	limit := l.config.MaxFileSizeBytes()
	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Document{}, common.NewInputError(name, "cannot read input", err)
	}
	if int64(len(content)) > limit {
		return Document{}, common.NewInputError(name, "input exceeds size limit", common.ErrInputTooLarge)
	}
	return l.decode(ctx, name, content)
}

func (l *Loader) decode(ctx context.Context, name string, content []byte) (Document, error) {
	head := content
	if len(head) > HeaderSize {
		head = head[:HeaderSize]
	}
	kind := DetectKind(name, head)
	doc := Document{Source: name, Kind: kind, Size: int64(len(content))}

	switch kind {
	case KindBinary:
		return doc, common.NewInputError(name, "binary input is not scanned", common.ErrUnsupportedInput)

	case KindPDF:
		text, err := ExtractPDFText(ctx, bytes.NewReader(content), int64(len(content)), l.config.MaxPDFPages)
		if err != nil {
			return doc, common.NewInputError(name, "cannot extract PDF text", err)
		}
		doc.Text = text

	case KindHTML:
		page, err := ExtractHTML(DecodeText(content), l.config.HarvestHTMLAttributes)
		if err != nil {
			return doc, common.NewInputError(name, "cannot parse HTML", err)
		}
		parts := []string{page.Text}
		parts = append(parts, page.Links...)
		if l.config.AnalyzeJavaScript {
			for _, script := range page.Scripts {
				parts = append(parts, ExtractJavaScriptURLs([]byte(script))...)
			}
		}
		doc.Text = strings.Join(parts, "\n")

	case KindJavaScript:
		text := DecodeText(content)
		if l.config.AnalyzeJavaScript {
			if urls := ExtractJavaScriptURLs([]byte(text)); len(urls) > 0 {
				text += "\n" + strings.Join(urls, "\n")
			}
		}
		doc.Text = text

	default:
		doc.Text = DecodeText(content)
	}

	l.logger.Debug().
		Str("source", name).
		Str("kind", string(kind)).
		Int64("size", doc.Size).
		Msg("Loaded input")
	return doc, nil
}
