package merge_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jan-hudec/podiffutils/internal/catalog"
	"github.com/jan-hudec/podiffutils/internal/merge"
)

func mustParse(t *testing.T, text string) *catalog.File {
	t.Helper()
	f, err := catalog.ParseString(text)
	if err != nil {
		t.Fatalf("parsing catalog: %v", err)
	}
	return f
}

func doMerge(t *testing.T, base, local, remote string) (*catalog.File, int) {
	t.Helper()
	differ, err := merge.New(merge.FormatPO)
	if err != nil {
		t.Fatalf("merge.New: %v", err)
	}
	out, conflicts := differ.Merge(mustParse(t, base), mustParse(t, local), mustParse(t, remote))
	return out, conflicts
}

func checkMerge(t *testing.T, base, local, remote, want string, wantConflicts int) {
	t.Helper()
	out, conflicts := doMerge(t, base, local, remote)
	if got := out.String(); got != want {
		t.Errorf("merged catalog mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
	if conflicts != wantConflicts {
		t.Errorf("conflicts = %d, want %d", conflicts, wantConflicts)
	}
}

// Different additions in the same place: local order is kept, remote
// additions slot in as early as possible.
func TestMergeAdd(t *testing.T) {
	checkMerge(t,
		`msgid "foo"
msgstr "foo"
`,
		`msgid "foo"
msgstr "foo"

msgid "bar"
msgstr "bar"
`,
		`msgid "foo"
msgstr "foo"

msgid "baz"
msgstr "baz"
`,
		`msgid "foo"
msgstr "foo"

msgid "baz"
msgstr "baz"

msgid "bar"
msgstr "bar"
`, 0)
}

// Changing the translation on one or the other side.
func TestMergeChangeTranslation(t *testing.T) {
	checkMerge(t,
		`msgid "original"
msgstr "translation"
`,
		`msgid "original"
msgstr "translation"
`,
		`msgid "original"
msgstr "modified"
`,
		`msgid "original"
msgstr "modified"
`, 0)
	checkMerge(t,
		`msgid "original"
msgstr "translation"
`,
		`msgid "original"
msgstr "modified"
`,
		`msgid "original"
msgstr "translation"
`,
		`msgid "original"
msgstr "modified"
`, 0)
}

// A basic conflict in translations produces the msgcat-style marker.
func TestMergeConflict(t *testing.T) {
	checkMerge(t,
		`msgid "foo"
msgstr "bar"
`,
		`msgid "foo"
msgstr "baz"
`,
		`msgid "foo"
msgstr "qyzzy"
`,
		`#, fuzzy
msgid "foo"
msgstr ""
"#-#-#-#-#  local (???)  #-#-#-#-#\n"
"baz\n"
"#-#-#-#-#  remote (???)  #-#-#-#-#\n"
"qyzzy\n"
`, 1)
}

// Swapping local and remote swaps the marker halves but changes neither the
// conflict count nor the fuzzy flag.
func TestMergeConflictSymmetry(t *testing.T) {
	checkMerge(t,
		`msgid "foo"
msgstr "bar"
`,
		`msgid "foo"
msgstr "qyzzy"
`,
		`msgid "foo"
msgstr "baz"
`,
		`#, fuzzy
msgid "foo"
msgstr ""
"#-#-#-#-#  local (???)  #-#-#-#-#\n"
"qyzzy\n"
"#-#-#-#-#  remote (???)  #-#-#-#-#\n"
"baz\n"
`, 1)
}

// Full deletion on one side obsoletes the unit, keeping the other side's
// translation.
func TestMergeDelete(t *testing.T) {
	checkMerge(t,
		`msgid "foo"
msgstr "FOO"

msgid "bar"
msgstr "bar"
`,
		`msgid "foo"
msgstr "FOO"

msgid "bar"
msgstr "BAR"
`,
		`msgid "foo"
msgstr "FOO"
`,
		`msgid "foo"
msgstr "FOO"

#~ msgid "bar"
#~ msgstr "BAR"
`, 0)
}

// Obsoletion on one side combines with a translation change on the other.
func TestMergeObsolete(t *testing.T) {
	checkMerge(t,
		`msgid "foo"
msgstr "FOO"
`,
		`#~ msgid "foo"
#~ msgstr "FOO"
`,
		`#, fuzzy
msgid "foo"
msgstr "Foo!"
`,
		`#, fuzzy
#~ msgid "foo"
#~ msgstr "Foo!"
`, 0)
}

// A resurrection in one head beats obsolescence, and the translation still
// merges three-way.
func TestMergeResurrect(t *testing.T) {
	checkMerge(t,
		`#~ msgid "foo"
#~ msgstr "Foo"
`,
		`msgid "foo"
msgstr "Foo"
`,
		`#~ msgid "foo"
#~ msgstr "FOO"
`,
		`msgid "foo"
msgstr "FOO"
`, 0)
}

// A clean translation beats a fuzzy one instead of conflicting.
func TestMergePreferNonFuzzy(t *testing.T) {
	checkMerge(t,
		`msgid "foo"
msgstr ""
`,
		`#, fuzzy
msgid "foo"
msgstr "Foo"
`,
		`msgid "foo"
msgstr "FOO"
`,
		`msgid "foo"
msgstr "FOO"
`, 0)
}

// Change to fuzzy vs. no change is a change to fuzzy.
func TestMergeMarkFuzzy(t *testing.T) {
	checkMerge(t,
		`msgid "foo"
msgstr "FOO"
`,
		`#, fuzzy
msgid "foo"
msgstr "Foo"
`,
		`msgid "foo"
msgstr "FOO"
`,
		`#, fuzzy
msgid "foo"
msgstr "Foo"
`, 0)
}

// Locations merge as a set; harmless divergence cannot conflict.
func TestMergeLocations(t *testing.T) {
	checkMerge(t,
		`#: here:4 there:5
msgid "foo"
msgstr "bar"
`,
		`#: there:5 here:8
msgid "foo"
msgstr "bar"
`,
		`#: here:4 there:8
msgid "foo"
msgstr "bar"
`,
		`#: there:8
#: here:8
msgid "foo"
msgstr "bar"
`, 0)
}

// Both comment streams merge line by line.
func TestMergeComments(t *testing.T) {
	checkMerge(t,
		`# this is a
# rather silly
# comment
#. Translator, please
#. make a silly comment.
msgid "foo"
msgstr "bar"
`,
		`# this is a
# rather silly comment
#. Translator, please
#. make a silly comment.
msgid "foo"
msgstr "bar"
`,
		`# a really silly
# comment
#. Translator, please
#. DON'T make silly comments.
msgid "foo"
msgstr "bar"
`,
		`# a really silly
# rather silly comment
#. Translator, please
#. DON'T make silly comments.
msgid "foo"
msgstr "bar"
`, 0)
}

// Format flags merge as a set, fuzzy excluded.
func TestMergeTypeFlags(t *testing.T) {
	checkMerge(t,
		`#, python-brace-format
msgid "{foo}++"
msgstr "{foo}*"
`,
		`#, java-format
msgid "{foo}++"
msgstr "{foo}*"
`,
		`#, python-brace-format, no-c-sharp-format
msgid "{foo}++"
msgstr "{foo}*"
`,
		`#, no-c-sharp-format, java-format
msgid "{foo}++"
msgstr "{foo}*"
`, 0)
}

// Independent creation of the same entries converges without conflicts.
func TestMergeParallelCreation(t *testing.T) {
	checkMerge(t,
		`msgid "foo"
msgstr "Foo"
`,
		`msgid "bar"
msgstr "Bar"

msgid "foo"
msgstr "Foo"
`,
		`msgid "bar"
msgstr "Bar"

msgid "foo"
msgstr "Foo"
`,
		`msgid "bar"
msgstr "Bar"

msgid "foo"
msgstr "Foo"
`, 0)
}

// A unit removed entirely in both heads is dropped.
func TestMergeRemovedEverywhere(t *testing.T) {
	checkMerge(t,
		`msgid "keep"
msgstr "kept"

msgid "gone"
msgstr "bye"
`,
		`msgid "keep"
msgstr "kept"
`,
		`msgid "keep"
msgstr "kept"
`,
		`msgid "keep"
msgstr "kept"
`, 0)
}

// merge(b, b, b) reproduces b byte for byte.
func TestMergeIdentity(t *testing.T) {
	text := `# translated by someone
msgid ""
msgstr ""
"Project-Id-Version: Test 1.0\n"
"PO-Revision-Date: 2020-01-02 03:04+0000\n"

#: a.c:1
msgid "a"
msgstr "A"

#, fuzzy
msgid "b"
msgstr "B"

#~ msgid "c"
#~ msgstr "C"
`
	checkMerge(t, text, text, text, text, 0)
}

// merge(b, x, x) reproduces x.
func TestMergeConvergence(t *testing.T) {
	base := `msgid "keep"
msgstr "kept"

msgid "gone"
msgstr "bye"
`
	x := `msgid "keep"
msgstr "changed"

msgid "new"
msgstr "created"
`
	checkMerge(t, base, x, x, x, 0)
}

// Headers go first, then live units, then obsolete units, whatever the
// input order was.
func TestMergeBandOrder(t *testing.T) {
	scrambled := `#~ msgid "old"
#~ msgstr "OLD"

msgid "live"
msgstr "LIVE"

msgid ""
msgstr ""
"Project-Id-Version: Band 1.0\n"
`
	want := `msgid ""
msgstr ""
"Project-Id-Version: Band 1.0\n"

msgid "live"
msgstr "LIVE"

#~ msgid "old"
#~ msgstr "OLD"
`
	checkMerge(t, scrambled, scrambled, scrambled, want, 0)
}

// Plural units emit one conflict banner block per plural form.
func TestMergePluralConflict(t *testing.T) {
	checkMerge(t,
		`msgid "%d file"
msgid_plural "%d files"
msgstr[0] "base one"
msgstr[1] "base many"
`,
		`msgid "%d file"
msgid_plural "%d files"
msgstr[0] "l one"
msgstr[1] "l many"
`,
		`msgid "%d file"
msgid_plural "%d files"
msgstr[0] "r one"
msgstr[1] "r many"
`,
		`#, fuzzy
msgid "%d file"
msgid_plural "%d files"
msgstr[0] ""
"#-#-#-#-#  local (???)  #-#-#-#-#\n"
"l one\n"
"#-#-#-#-#  remote (???)  #-#-#-#-#\n"
"r one\n"
msgstr[1] ""
"#-#-#-#-#  local (???)  #-#-#-#-#\n"
"l many\n"
"#-#-#-#-#  remote (???)  #-#-#-#-#\n"
"r many\n"
`, 1)
}

// Simple header merging: each side's clean changes land, field order holds.
func TestMergeSimpleHeader(t *testing.T) {
	checkMerge(t,
		`# SOME DESCRIPTIVE TITLE.
# Copyright (C) YEAR THE PACKAGE'S COPYRIGHT HOLDER
# This file is distributed under the same license as the PACKAGE package.
# FIRST AUTHOR <EMAIL@ADDRESS>, YEAR.
#
#, fuzzy
msgid ""
msgstr ""
"Project-Id-Version: PACKAGE VERSION\n"
"Report-Msgid-Bugs-To: \n"
"POT-Creation-Date: 2013-12-11 11:30+0100\n"
"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language-Team: LANGUAGE <LL@li.org>\n"
"Language: \n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=utf-8\n"
"Content-Transfer-Encoding: 8bit\n"

#: test.c:2
msgid "foo"
msgstr ""
`,
		`# The Project.
# Copyright (C) 2013 A.U.Thor
# This file is distributed under the same license as the PACKAGE package.
# A.U.Thor <author@wherever>, 2013.
msgid ""
msgstr ""
"Project-Id-Version: Package -42\n"
"Report-Msgid-Bugs-To: /dev/null\n"
"POT-Creation-Date: 2013-12-11 11:30+0100\n"
"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language: cs\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=utf-8\n"
"Content-Transfer-Encoding: 8bit\n"

#: test.c:2
msgid "foo"
msgstr ""
`,
		`# SOME DESCRIPTIVE TITLE.
# Copyright (C) YEAR THE PACKAGE'S COPYRIGHT HOLDER
# This file is distributed under the same license as the PACKAGE package.
# FIRST AUTHOR <EMAIL@ADDRESS>, YEAR.
msgid ""
msgstr ""
"Project-Id-Version: PACKAGE VERSION\n"
"Report-Msgid-Bugs-To: \n"
"POT-Creation-Date: 2013-12-11 11:30+0100\n"
"PO-Revision-Date: 2013-12-11 11:40+0100\n"
"Last-Translator: Trans Lator <trans.lator@wherever>\n"
"Language: cs\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=utf-8\n"
"Content-Transfer-Encoding: 8bit\n"

#: test.c:2
msgid "foo"
msgstr ""
`,
		`# The Project.
# Copyright (C) 2013 A.U.Thor
# This file is distributed under the same license as the PACKAGE package.
# A.U.Thor <author@wherever>, 2013.
msgid ""
msgstr ""
"Project-Id-Version: Package -42\n"
"Report-Msgid-Bugs-To: /dev/null\n"
"POT-Creation-Date: 2013-12-11 11:30+0100\n"
"PO-Revision-Date: 2013-12-11 11:40+0100\n"
"Last-Translator: Trans Lator <trans.lator@wherever>\n"
"Language: cs\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=utf-8\n"
"Content-Transfer-Encoding: 8bit\n"

#: test.c:2
msgid "foo"
msgstr ""
`, 0)
}

// Header conflicts: template fields follow the newer POT-Creation-Date,
// everything else the newer PO-Revision-Date; every losing value becomes a
// "(conflict)" note; the header counts as one conflict in total.
func TestMergeHeaderConflicts(t *testing.T) {
	checkMerge(t,
		`# The Project.
# Copyright (C) 2013 A.U.Thor
# This file is distributed under the same license as the PACKAGE package.
# A.U.Thor <author@wherever>, 2013.
msgid ""
msgstr ""
"Project-Id-Version: Package -42\n"
"Report-Msgid-Bugs-To: /dev/null\n"
"POT-Creation-Date: 2013-12-11 11:30+0100\n"
"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language: \n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=utf-8\n"
"Content-Transfer-Encoding: 8bit\n"

#: test.c:2
msgid "foo"
msgstr ""
`,
		`# The Project.
# Copyright (C) 2013 A.U.Thor
# This file is distributed under the same license as the PACKAGE package.
# A.U.Thor <author@wherever>, 2013.
msgid ""
msgstr ""
"Project-Id-Version: Package -41\n"
"Report-Msgid-Bugs-To: /dev/zero\n"
"POT-Creation-Date: 2013-12-11 11:40+0100\n"
"PO-Revision-Date: 2013-12-11 11:50+0100\n"
"Last-Translator: Trans Lator <trans.lator@wherever>\n"
"Language: cs\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=utf-8\n"
"Content-Transfer-Encoding: 8bit\n"
"X-Whatever: this\n"

#: test.c:2
msgid "foo"
msgstr ""
`,
		`# The Project.
# Copyright (C) 2013 A.U.Thor
# This file is distributed under the same license as the PACKAGE package.
# A.U.Thor <author@wherever>, 2013.
msgid ""
msgstr ""
"Project-Id-Version: Package -40\n"
"Report-Msgid-Bugs-To: /dev/null\n"
"POT-Creation-Date: 2013-12-11 11:50+0100\n"
"PO-Revision-Date: 2013-12-11 11:40+0100\n"
"Last-Translator: Previous Lator <previous.lator@wherever>\n"
"Language: cs_CZ\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=utf-8\n"
"Content-Transfer-Encoding: 8bit\n"
"X-Whatever: that\n"

#: test.c:2
msgid "foo"
msgstr ""
`,
		`# The Project.
# Copyright (C) 2013 A.U.Thor
# This file is distributed under the same license as the PACKAGE package.
# A.U.Thor <author@wherever>, 2013.
# (conflict) local (Package -41): Project-Id-Version: Package -41
# (conflict) local (Package -41): POT-Creation-Date: 2013-12-11 11:40+0100
# (conflict) remote (Package -40): PO-Revision-Date: 2013-12-11 11:40+0100
# (conflict) remote (Package -40): Last-Translator: Previous Lator <previous.lator@wherever>
# (conflict) remote (Package -40): Language: cs_CZ
# (conflict) remote (Package -40): X-Whatever: that
msgid ""
msgstr ""
"Project-Id-Version: Package -40\n"
"Report-Msgid-Bugs-To: /dev/zero\n"
"POT-Creation-Date: 2013-12-11 11:50+0100\n"
"PO-Revision-Date: 2013-12-11 11:50+0100\n"
"Last-Translator: Trans Lator <trans.lator@wherever>\n"
"Language: cs\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=utf-8\n"
"Content-Transfer-Encoding: 8bit\n"
"X-Whatever: this\n"

#: test.c:2
msgid "foo"
msgstr ""
`, 1)
}

// Header fields merge as a set too: a field dropped on one side stays
// dropped, even if the other side changed its value. Removal wins without
// conflicting.
func TestMergeHeaderFieldRemoved(t *testing.T) {
	out, conflicts := doMerge(t,
		`msgid ""
msgstr ""
"Language: cs\n"
"X-Custom: A\n"
`,
		`msgid ""
msgstr ""
"Language: cs\n"
"X-Custom: B\n"
`,
		`msgid ""
msgstr ""
"Language: cs\n"
`)
	if conflicts != 0 {
		t.Fatalf("conflicts = %d, want 0", conflicts)
	}
	text := out.String()
	if strings.Contains(text, "X-Custom") {
		t.Errorf("removed field survived in:\n%s", text)
	}
	if !strings.Contains(text, `"Language: cs\n"`) {
		t.Errorf("kept field missing in:\n%s", text)
	}
}
