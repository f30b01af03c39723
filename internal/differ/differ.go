package differ

import (
	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/henrykdz/pathment/internal/pathment"
	"github.com/rs/zerolog"
)

// PathmentDiffer compares two record sets by canonical address.
type PathmentDiffer struct {
	config    config.DiffConfig
	canonical pathment.CanonicalOptions
	lines     *LineDiffer
	logger    zerolog.Logger
}

// NewPathmentDiffer creates a PathmentDiffer.
func NewPathmentDiffer(cfg config.DiffConfig, logger zerolog.Logger) *PathmentDiffer {
	return &PathmentDiffer{
		config:    cfg,
		canonical: cfg.CanonicalOptions(),
		lines:     NewLineDiffer(cfg.SemanticCleanup),
		logger:    logger.With().Str("component", "PathmentDiffer").Logger(),
	}
}

// Compare classifies every record of both sets as new, removed or existing.
// Interesting records are not compared. Duplicates within one set collapse
// onto their first occurrence. Results list the current set in sorted order,
// followed by the removed records.
func (d *PathmentDiffer) Compare(oldSource string, previous []models.PathmentRecord, newSource string, current []models.PathmentRecord) *models.PathmentDiffResult {
	oldSet := d.index(previous)
	newSet := d.index(current)

	result := &models.PathmentDiffResult{
		OldSource: oldSource,
		NewSource: newSource,
		Results:   make([]models.DiffedPathment, 0, len(oldSet.records)+len(newSet.records)),
	}

	for i, r := range newSet.records {
		status := models.StatusNew
		if oldSet.has(newSet.keys[i]) {
			status = models.StatusExisting
			result.Existing++
		} else {
			result.New++
		}
		result.Results = append(result.Results, models.DiffedPathment{Record: r, Status: status})
	}
	for i, r := range oldSet.records {
		if newSet.has(oldSet.keys[i]) {
			continue
		}
		result.Removed++
		result.Results = append(result.Results, models.DiffedPathment{Record: r, Status: models.StatusRemoved})
	}

	if d.config.ShowLineDiff {
		result.Lines = d.lines.Compare(addresses(oldSet.records), addresses(newSet.records))
	}

	d.logger.Debug().
		Str("old_source", oldSource).
		Str("new_source", newSource).
		Int("new", result.New).
		Int("removed", result.Removed).
		Int("existing", result.Existing).
		Msg("Pathment comparison complete")
	return result
}

// recordSet holds deduplicated records in sorted order with their match keys.
type recordSet struct {
	records []models.PathmentRecord
	keys    []string
	lookup  map[string]struct{}
}

func (s recordSet) has(key string) bool {
	_, ok := s.lookup[key]
	return ok
}

func (d *PathmentDiffer) index(records []models.PathmentRecord) recordSet {
	set := recordSet{lookup: make(map[string]struct{}, len(records))}
	for _, r := range records {
		if r.Interesting {
			continue
		}
		key := d.MatchKey(r)
		if set.has(key) {
			continue
		}
		set.lookup[key] = struct{}{}
		set.records = append(set.records, r)
	}

	models.SortRecords(set.records)
	set.keys = make([]string, len(set.records))
	for i, r := range set.records {
		set.keys[i] = d.MatchKey(r)
	}
	return set
}

// MatchKey is the identity two records must share to count as the same
// Pathment. The address is classified again so records written under other
// canonical options still line up.
func (d *PathmentDiffer) MatchKey(r models.PathmentRecord) string {
	p := r.ToPathment()
	if p.IsSpecified() {
		if canonical := p.CanonicalAddress(d.canonical); canonical != "" {
			return canonical
		}
	}
	if r.Canonical != "" {
		return r.Canonical
	}
	return r.Key()
}

func addresses(records []models.PathmentRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Address
	}
	return out
}
