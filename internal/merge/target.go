package merge

import (
	"fmt"
	"slices"

	"github.com/jan-hudec/podiffutils/internal/catalog"
)

// equivalentTranslation reports whether two units carry the same
// translation. Fuzzy and non-fuzzy are different translations, except for an
// empty target where the flag carries no information.
func equivalentTranslation(a, b catalog.Unit) bool {
	return a.GetTarget().Equal(b.GetTarget()) &&
		(a.IsFuzzy() == b.IsFuzzy() || a.GetTarget().IsEmpty())
}

// translationQuality scores a unit's translation for conflict resolution:
// blank 0, fuzzy 1, clean 2.
func translationQuality(u catalog.Unit) int {
	switch {
	case u.IsBlank():
		return 0
	case u.IsFuzzy():
		return 1
	}
	return 2
}

// mergeTarget decides which side's translation the output carries. The
// previous-msgid fields and the fuzzy flag travel with the chosen
// translation. A genuine conflict between equal-quality sides produces a
// fuzzy conflict-marker target and counts as one conflict.
func (d *Differ) mergeTarget(out, base, local, remote catalog.Unit) int {
	adopt := func(u catalog.Unit) {
		out.SetTarget(u.GetTarget())
		if u.PrevSource() != "" {
			out.SetPrev(u.PrevContext(), u.PrevSource(), u.PrevPlural())
		}
		out.MarkFuzzy(u.IsFuzzy())
	}

	switch {
	// Change trumps no change.
	case equivalentTranslation(base, local):
		adopt(remote)
	case equivalentTranslation(base, remote):
		adopt(local)
	// Same change on both sides.
	case equivalentTranslation(local, remote):
		adopt(local)
	default:
		lq, rq := translationQuality(local), translationQuality(remote)
		switch {
		case lq > rq:
			adopt(local)
		case rq > lq:
			adopt(remote)
		default:
			out.SetTarget(conflictTarget(local, remote))
			out.MarkFuzzy(true)
			return 1
		}
	}
	return 0
}

// conflictTarget builds the msgcat-style conflict body embedding both
// translations under "#-#-#-#-#" banners. Plural units get one banner block
// per plural form, padding the shorter side with empty strings.
func conflictTarget(local, remote catalog.Unit) catalog.Target {
	lfile, lproject := conflictLabel(local, "local")
	rfile, rproject := conflictLabel(remote, "remote")

	ls := slices.Clone(local.GetTarget().Strings)
	rs := slices.Clone(remote.GetTarget().Strings)
	for len(ls) < len(rs) {
		ls = append(ls, "")
	}
	for len(rs) < len(ls) {
		rs = append(rs, "")
	}

	block := func(l, r string) string {
		return fmt.Sprintf("#-#-#-#-#  %s (%s)  #-#-#-#-#\n%s\n#-#-#-#-#  %s (%s)  #-#-#-#-#\n%s\n",
			lfile, lproject, l, rfile, rproject, r)
	}

	if local.HasPlural() {
		forms := make([]string, len(ls))
		for i := range ls {
			forms[i] = block(ls[i], rs[i])
		}
		return catalog.PluralTarget(forms...)
	}
	return catalog.SingleTarget(block(ls[0], rs[0]))
}

// conflictLabel names one side of a conflict: the catalog's filename (or the
// fallback for in-memory catalogs) and its Project-Id-Version.
func conflictLabel(u catalog.Unit, fallback string) (file, project string) {
	file, project = fallback, "???"
	s := u.Store()
	if s == nil {
		return
	}
	if s.Filename() != "" {
		file = s.Filename()
	}
	if v, ok := s.ParseHeader()["Project-Id-Version"]; ok {
		project = v
	}
	return
}
