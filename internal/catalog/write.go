package catalog

import (
	"fmt"
	"io"
	"strings"
)

var poEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// String serializes the catalog back to PO text.
func (f *File) String() string {
	blocks := make([]string, 0, len(f.units))
	for _, u := range f.units {
		e, ok := u.(*Entry)
		if !ok {
			panic(fmt.Sprintf("catalog: cannot serialize unit of type %T", u))
		}
		blocks = append(blocks, e.poBlock())
	}
	return strings.Join(blocks, "\n")
}

// WriteTo writes the serialized catalog to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.String())
	return int64(n), err
}

func (e *Entry) poBlock() string {
	var b strings.Builder

	for _, note := range e.transNotes {
		if note == "" {
			b.WriteString("#\n")
		} else {
			b.WriteString("# " + note + "\n")
		}
	}
	for _, note := range e.devNotes {
		b.WriteString("#. " + note + "\n")
	}
	for _, loc := range e.locations {
		b.WriteString("#: " + loc + "\n")
	}
	for _, line := range e.typeComments {
		b.WriteString(line + "\n")
	}
	if e.prevContext != "" {
		writeField(&b, "#| ", "msgctxt", e.prevContext)
	}
	if e.prevSource != "" {
		writeField(&b, "#| ", "msgid", e.prevSource)
		if e.prevPlural != "" {
			writeField(&b, "#| ", "msgid_plural", e.prevPlural)
		}
	}

	prefix := ""
	if e.obsolete {
		prefix = "#~ "
	}
	if e.context != "" {
		writeField(&b, prefix, "msgctxt", e.context)
	}
	writeField(&b, prefix, "msgid", e.source)
	if e.hasPlural {
		writeField(&b, prefix, "msgid_plural", e.pluralSource)
		for i, form := range e.target.Strings {
			writeField(&b, prefix, fmt.Sprintf("msgstr[%d]", i), form)
		}
	} else {
		writeField(&b, prefix, "msgstr", e.target.String())
	}
	return b.String()
}

// wrapWidth is the column quoted strings wrap at, matching gettext output.
const wrapWidth = 77

// writeField emits one keyword with its quoted value. A value that needs
// more than one quoted string, because it contains newlines or overflows the
// wrap column, goes out as an empty first string followed by one quoted
// segment per line, the way gettext tools write them.
func writeField(b *strings.Builder, prefix, kw, value string) {
	var lines []string
	for _, seg := range splitAfterNewlines(value) {
		lines = append(lines, wrapQuoted(poEscaper.Replace(seg))...)
	}
	if !strings.Contains(value, "\n") && len(lines) <= 1 {
		b.WriteString(prefix + kw + ` "` + poEscaper.Replace(value) + "\"\n")
		return
	}
	b.WriteString(prefix + kw + " \"\"\n")
	for _, line := range lines {
		b.WriteString(prefix + `"` + line + "\"\n")
	}
}

// wrapQuoted breaks one escaped segment into lines of at most wrapWidth
// characters, breaking after the last space that fits and falling back to a
// hard break. A break never lands inside an escape sequence.
func wrapQuoted(s string) []string {
	if len(s) <= wrapWidth {
		return []string{s}
	}
	var lines []string
	for len(s) > wrapWidth {
		cut := strings.LastIndexByte(s[:wrapWidth], ' ')
		if cut < 0 {
			cut = wrapWidth
		} else {
			cut++ // the space stays on the current line
		}
		for cut > 1 && trailingBackslashes(s[:cut])%2 == 1 {
			cut--
		}
		lines = append(lines, s[:cut])
		s = s[cut:]
	}
	if s != "" {
		lines = append(lines, s)
	}
	return lines
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

func splitAfterNewlines(s string) []string {
	var segs []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			segs = append(segs, s)
			break
		}
		segs = append(segs, s[:i+1])
		s = s[i+1:]
	}
	return segs
}
