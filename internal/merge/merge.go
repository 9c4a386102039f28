package merge

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jan-hudec/podiffutils/internal/catalog"
	"github.com/jan-hudec/podiffutils/internal/debug"
)

// Merge three-way merges remote and local against their common ancestor
// base, returning the merged catalog and the number of unresolved conflicts.
// The inputs are not modified. Entries are matched by identity (context +
// source), never by position, so pure reordering cannot conflict.
//
// The output keeps all header units first, then live units, then obsolete
// units; within each band the matcher's order is preserved.
func (d *Differ) Merge(base, local, remote catalog.Store) (*catalog.File, int) {
	debug.Logf("merging %s and %s against base %s",
		storeName(local), storeName(remote), storeName(base))

	out := catalog.NewFile("")
	keyOf := func(u catalog.Unit) catalog.Key { return u.Key() }
	deleted := func(u catalog.Unit) bool { return u.IsObsolete() }

	var headers, normal, obsolete []catalog.Unit
	conflicts := 0
	for t := range Match3(units(base), units(local), units(remote), keyOf, deleted) {
		u, c := d.MergeUnit(deref(t.Base), deref(t.Local), deref(t.Remote))
		conflicts += c
		if u == nil {
			continue
		}
		if _, ok := u.(*catalog.Entry); !ok {
			panic(fmt.Sprintf("merge: unit type %T does not belong to a PO catalog", u))
		}
		switch {
		case u.IsHeader():
			headers = append(headers, u)
		case u.IsObsolete():
			obsolete = append(obsolete, u)
		default:
			normal = append(normal, u)
		}
	}

	// The matcher can interleave bands, so force the band order here.
	for _, u := range slices.Concat(headers, normal, obsolete) {
		out.AddUnit(u)
	}

	debug.Logf("merge produced %d units (%d header, %d live, %d obsolete), %d conflicts",
		len(headers)+len(normal)+len(obsolete), len(headers), len(normal), len(obsolete), conflicts)
	return out, conflicts
}

func units(s catalog.Store) iter.Seq[catalog.Unit] {
	return slices.Values(s.Units())
}

func deref(p *catalog.Unit) catalog.Unit {
	if p == nil {
		return nil
	}
	return *p
}

func storeName(s catalog.Store) string {
	if s.Filename() == "" {
		return "<memory>"
	}
	return s.Filename()
}
