package merge

import "github.com/jan-hudec/podiffutils/internal/catalog"

// ChangeKind classifies one entry of a two-way diff.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRemoved
	ChangeModified
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	}
	return "unknown"
}

// Change is one differing entry between two catalogs.
type Change struct {
	Kind ChangeKind
	Key  catalog.Key
	Old  catalog.Unit // nil for additions
	New  catalog.Unit // nil for removals
}

// Diff compares two catalogs entry by entry, matched by identity. Entries
// whose translation, fuzziness or obsolete state differ are reported as
// modified; cosmetic differences (locations, comments, flag sets) are not
// changes.
func (d *Differ) Diff(old, new catalog.Store) []Change {
	keyOf := func(u catalog.Unit) catalog.Key { return u.Key() }
	deleted := func(u catalog.Unit) bool { return u.IsObsolete() }

	var changes []Change
	for p := range Match2(units(old), units(new), keyOf, deleted) {
		switch {
		case p.Old == nil:
			changes = append(changes, Change{Kind: ChangeAdded, Key: (*p.New).Key(), New: *p.New})
		case p.New == nil:
			changes = append(changes, Change{Kind: ChangeRemoved, Key: (*p.Old).Key(), Old: *p.Old})
		default:
			o, n := *p.Old, *p.New
			if !equivalentTranslation(o, n) || o.IsObsolete() != n.IsObsolete() {
				changes = append(changes, Change{Kind: ChangeModified, Key: o.Key(), Old: o, New: n})
			}
		}
	}
	return changes
}
