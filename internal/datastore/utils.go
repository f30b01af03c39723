package datastore

import (
	"context"
	"regexp"
	"strings"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/rs/zerolog"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedUnderscores = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename turns a session id or source name into a safe file name.
func SanitizeFilename(input string) string {
	name := input
	if i := strings.Index(name, "://"); i != -1 {
		name = name[i+3:]
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = repeatedUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_.")
	if name == "" {
		return "sanitized_empty_input"
	}
	return name
}

// checkCancellation returns a wrapped context error once ctx is done.
func checkCancellation(ctx context.Context, logger zerolog.Logger, operation string) error {
	select {
	case <-ctx.Done():
		logger.Debug().Err(ctx.Err()).Str("operation", operation).Msg("Context cancelled")
		return common.WrapErrorf(ctx.Err(), "%s cancelled", operation)
	default:
		return nil
	}
}
