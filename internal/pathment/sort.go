package pathment

import (
	"cmp"
	"slices"
	"strings"
)

// Compare is the default ordering: priority bucket first, then the display
// address compared case-insensitively. Remaining ties are broken on type and
// exact address so the order is total.
func Compare(a, b *Pathment) int {
	if c := CompareEntries(a.typ, a.AddressForDisplay(), b.typ, b.AddressForDisplay()); c != 0 {
		return c
	}
	return cmp.Compare(a.protocol, b.protocol)
}

// CompareEntries applies the ordering of Compare to a type and display
// address pair, for callers holding flattened Pathments.
func CompareEntries(ta Type, da string, tb Type, db string) int {
	if c := cmp.Compare(ta.sortPriority(), tb.sortPriority()); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(da), strings.ToLower(db)); c != 0 {
		return c
	}
	if c := cmp.Compare(ta, tb); c != 0 {
		return c
	}
	return strings.Compare(da, db)
}

// SortPathments sorts in place using Compare.
func SortPathments(pathments []*Pathment) {
	slices.SortStableFunc(pathments, Compare)
}
