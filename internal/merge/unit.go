package merge

import (
	"github.com/jan-hudec/podiffutils/internal/catalog"
)

// MergeUnit three-way merges one unit. At least one input must be non-nil,
// and all non-nil inputs must share the same key. It returns the merged unit
// (freshly constructed; the inputs are never mutated) and the number of
// conflicts encountered.
//
// Creation and deletion are handled here; a unit that exists on all sides
// but is obsolete somewhere is not a deletion; obsolete is merged as just
// another property.
func (d *Differ) MergeUnit(base, local, remote catalog.Unit) (catalog.Unit, int) {
	if base == nil && local == nil && remote == nil {
		panic("merge: MergeUnit called without any input unit")
	}
	if base != nil && local == nil && remote == nil {
		// Removed entirely on both sides; nothing survives.
		return nil, 0
	}
	if base == nil { // creation
		if remote == nil {
			return local.CloneForOutput(), 0
		}
		if local == nil {
			return remote.CloneForOutput(), 0
		}
		// Created independently on both sides: merge against a synthetic
		// empty base so identical additions converge.
		return d.mergeStructural(local.CloneEmpty(), local, remote)
	}
	if remote == nil { // deleted in remote
		u := local.CloneForOutput()
		if !base.IsObsolete() {
			u.MakeObsolete()
		}
		return u, 0
	}
	if local == nil { // deleted in local
		u := remote.CloneForOutput()
		if !base.IsObsolete() {
			u.MakeObsolete()
		}
		return u, 0
	}
	return d.mergeStructural(base, local, remote)
}

// mergeStructural merges the unit's supporting structure (locations, both
// note streams, flag sets, the obsolete marker), then hands the body to the
// header or translation merge.
func (d *Differ) mergeStructural(base, local, remote catalog.Unit) (catalog.Unit, int) {
	out := local.CloneEmpty()

	for _, loc := range mergeLists(base.Locations(), local.Locations(), remote.Locations()) {
		out.AddLocation(loc)
	}
	for _, note := range mergeLists(
		noteLines(base, catalog.NoteDeveloper),
		noteLines(local, catalog.NoteDeveloper),
		noteLines(remote, catalog.NoteDeveloper)) {
		out.AddNote(note, catalog.NoteDeveloper)
	}
	for _, note := range mergeLists(
		noteLines(base, catalog.NoteTranslator),
		noteLines(local, catalog.NoteTranslator),
		noteLines(remote, catalog.NoteTranslator)) {
		out.AddNote(note, catalog.NoteTranslator)
	}
	setTypeFlags(out, mergeLists(typeFlags(base), typeFlags(local), typeFlags(remote)))
	if mergeSimple(base.IsObsolete(), local.IsObsolete(), remote.IsObsolete()) {
		out.MakeObsolete()
	}

	var conflicts int
	if local.IsHeader() {
		conflicts = d.mergeHeader(out, base, local, remote)
	} else {
		conflicts = d.mergeTarget(out, base, local, remote)
	}
	return out, conflicts
}
