// Package merge implements the three-way catalog merge: an order-preserving
// set matcher pairing units across base, local and remote, and the per-unit
// merge deciding what to emit and whether a conflict occurred.
//
// Genuine merge conflicts are not errors: they are materialised into the
// output (fuzzy flags, conflict-marker targets, header conflict notes) and
// counted. Invariant violations (a conflict-free merge asked to resolve a
// three-way disagreement, matcher post-conditions failing) panic with a
// diagnostic, since they indicate a caller bug rather than user data.
package merge

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/jan-hudec/podiffutils/internal/catalog"
)

// Format names a catalog format the differ knows how to merge.
type Format string

// FormatPO is the gettext PO format.
const FormatPO Format = "po"

var supportedFormats = map[Format]bool{
	FormatPO: true,
}

// Differ merges and diffs catalogs of one format.
type Differ struct {
	format Format
}

// New returns a differ for the given format.
func New(format Format) (*Differ, error) {
	if !supportedFormats[format] {
		return nil, fmt.Errorf("merge: unsupported catalog format %q", format)
	}
	return &Differ{format: format}, nil
}

// mergeSimple merges a scalar that cannot conflict: either at most one side
// changed it, or both sides made the same change. Booleans qualify, as do
// per-element merges in a set where each side either has the one value or
// nothing.
func mergeSimple[T comparable](base, local, remote T) T {
	switch {
	case base == remote:
		return local
	case base == local:
		return remote
	case local == remote:
		return local
	}
	panic(fmt.Sprintf("merge: three-way disagreement in conflict-free merge (%v, %v, %v)",
		base, local, remote))
}

// mergeOption is mergeSimple over optional values, comparing by pointee.
func mergeOption[T comparable](base, local, remote *T) *T {
	switch {
	case optEqual(base, remote):
		return local
	case optEqual(base, local):
		return remote
	case optEqual(local, remote):
		return local
	}
	panic(fmt.Sprintf("merge: three-way disagreement in conflict-free merge (%s, %s, %s)",
		optString(base), optString(local), optString(remote)))
}

func optEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func optString[T any](p *T) string {
	if p == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%v", *p)
}

// mergeLists merges three lists as sets keyed by value, preserving order via
// the three-way matcher. Elements absent from the merged result drop out.
func mergeLists(base, local, remote []string) []string {
	var out []string
	identity := func(s string) string { return s }
	for t := range Match3(slices.Values(base), slices.Values(local), slices.Values(remote), identity, nil) {
		if v := mergeOption(t.Base, t.Local, t.Remote); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

var typeFlagPattern = regexp.MustCompile(`\b[-\w]+\b`)

// typeFlags extracts the flag tokens from a unit's "#," comments. The fuzzy
// flag is tracked separately and excluded here.
func typeFlags(u catalog.Unit) []string {
	var out []string
	for _, tok := range typeFlagPattern.FindAllString(strings.Join(u.TypeComments(), "\n"), -1) {
		if tok != "fuzzy" {
			out = append(out, tok)
		}
	}
	return out
}

func setTypeFlags(u catalog.Unit, flags []string) {
	if len(flags) == 0 {
		u.SetTypeComments(nil)
		return
	}
	u.SetTypeComments([]string{"#, " + strings.Join(flags, ", ")})
}

func noteLines(u catalog.Unit, origin catalog.NoteOrigin) []string {
	return strings.Split(u.Notes(origin), "\n")
}
