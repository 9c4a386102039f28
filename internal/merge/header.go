package merge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jan-hudec/podiffutils/internal/catalog"
)

// templateHeaders are the header fields owned by the message template.
// Conflicts on them are arbitrated by POT-Creation-Date; every other field
// by PO-Revision-Date.
var templateHeaders = map[string]bool{
	"Project-Id-Version":   true,
	"Report-Msgid-Bugs-To": true,
	"POT-Creation-Date":    true,
	"Language-Team":        true,
}

var headerTimePattern = regexp.MustCompile(
	`^([0-9]{4})-([0-9]{1,2})-([0-9]{1,2})\s+([0-9]{1,2}):([0-9]{1,2})(?::([0-9]{1,2}))?\s*([+-])([0-9]{2})([0-9]{2})`)

// headerTime converts a PO header timestamp like "2013-12-11 11:30+0100" to
// Unix seconds. Anything that does not look like a timestamp, including the
// "YEAR-MO-DA HO:MI+ZONE" placeholder gettext writes into fresh catalogs,
// parses as the epoch, so any real timestamp beats a placeholder.
func headerTime(s string) int64 {
	m := headerTimePattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	num := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	sec := 0
	if m[6] != "" {
		sec = num(m[6])
	}
	wall := time.Date(num(m[1]), time.Month(num(m[2])), num(m[3]),
		num(m[4]), num(m[5]), sec, 0, time.UTC)
	offset := int64(num(m[8])*3600 + num(m[9])*60)
	if m[7] == "-" {
		offset = -offset
	}
	return wall.Unix() - offset
}

// mergeHeader three-way merges the header body field by field. Fields where
// only one side differs from base merge cleanly; a genuine disagreement is
// arbitrated by timestamp (ties go to local), the losing value is recorded
// as a "(conflict) ..." translator note, and the header counts as one
// conflict no matter how many fields disagreed.
func (d *Differ) mergeHeader(out, base, local, remote catalog.Unit) int {
	baseKeys, baseFields := catalog.ParseHeaderString(base.GetTarget().String())
	localKeys, localFields := catalog.ParseHeaderString(local.GetTarget().String())
	remoteKeys, remoteFields := catalog.ParseHeaderString(remote.GetTarget().String())

	localNewer := func(field string) bool {
		return headerTime(localFields[field]) >= headerTime(remoteFields[field])
	}

	conflicts := 0
	var body strings.Builder
	for _, key := range mergeLists(baseKeys, localKeys, remoteKeys) {
		b := lookupField(baseFields, key)
		l := lookupField(localFields, key)
		r := lookupField(remoteFields, key)

		var res *string
		switch {
		case optEqual(b, l):
			res = r
		case optEqual(b, r), optEqual(l, r):
			res = l
		default: // conflict
			field := "PO-Revision-Date"
			if templateHeaders[key] {
				field = "POT-Creation-Date"
			}
			useLocal := localNewer(field)

			losingFields, losingUnit, losingName := localFields, local, "local"
			if useLocal {
				losingFields, losingUnit, losingName = remoteFields, remote, "remote"
				res = l
			} else {
				res = r
			}

			file := losingName
			if s := losingUnit.Store(); s != nil && s.Filename() != "" {
				file = s.Filename()
			}
			project := "???"
			if v, ok := losingFields["Project-Id-Version"]; ok {
				project = v
			}
			value := "<unset>"
			if v, ok := losingFields[key]; ok {
				value = v
			}
			out.AddNote(fmt.Sprintf("(conflict) %s (%s): %s: %s", file, project, key, value),
				catalog.NoteTranslator)
			conflicts = 1
		}
		if res != nil {
			body.WriteString(key + ": " + *res + "\n")
		}
	}

	out.SetTarget(catalog.SingleTarget(body.String()))
	out.MarkFuzzy(mergeSimple(base.IsFuzzy(), local.IsFuzzy(), remote.IsFuzzy()))
	return conflicts
}

func lookupField(fields map[string]string, key string) *string {
	if v, ok := fields[key]; ok {
		return &v
	}
	return nil
}
