package differ

import (
	"strings"

	"github.com/henrykdz/pathment/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiffer produces a line-level diff of two address lists.
type LineDiffer struct {
	dmp             *diffmatchpatch.DiffMatchPatch
	semanticCleanup bool
}

// NewLineDiffer creates a LineDiffer.
func NewLineDiffer(semanticCleanup bool) *LineDiffer {
	return &LineDiffer{
		dmp:             diffmatchpatch.New(),
		semanticCleanup: semanticCleanup,
	}
}

// Compare diffs previous against current, one entry per line.
func (ld *LineDiffer) Compare(previous, current []string) []models.LineDiff {
	text1, text2 := joinLines(previous), joinLines(current)
	if text1 == text2 {
		return equalLines(previous)
	}

	chars1, chars2, lineArray := ld.dmp.DiffLinesToChars(text1, text2)
	diffs := ld.dmp.DiffMain(chars1, chars2, false)
	if ld.semanticCleanup {
		diffs = ld.dmp.DiffCleanupSemantic(diffs)
	}
	diffs = ld.dmp.DiffCharsToLines(diffs, lineArray)

	var out []models.LineDiff
	for _, diff := range diffs {
		op := operationName(diff.Type)
		for _, line := range splitLines(diff.Text) {
			out = append(out, models.LineDiff{Operation: op, Text: line})
		}
	}
	return out
}

func operationName(t diffmatchpatch.Operation) string {
	switch t {
	case diffmatchpatch.DiffInsert:
		return models.LineInsert
	case diffmatchpatch.DiffDelete:
		return models.LineDelete
	default:
		return models.LineEqual
	}
}

func equalLines(lines []string) []models.LineDiff {
	out := make([]models.LineDiff, len(lines))
	for i, line := range lines {
		out[i] = models.LineDiff{Operation: models.LineEqual, Text: line}
	}
	return out
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
