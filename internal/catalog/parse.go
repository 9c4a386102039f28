package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// keyword identifies which string field a continuation line appends to.
type keyword int

const (
	kwNone keyword = iota
	kwMsgctxt
	kwMsgid
	kwMsgidPlural
	kwMsgstr
	kwPrevMsgctxt
	kwPrevMsgid
	kwPrevMsgidPlural
)

type parser struct {
	filename string
	line     int

	file *File
	seen map[Key]bool

	// entry under construction
	started     bool
	obsolete    bool
	transNotes  []string
	devNotes    []string
	locations   []string
	typeLines   []string
	context     string
	source      string
	plural      string
	prevContext string
	prevSource  string
	prevPlural  string
	msgstrs     map[int]string
	maxIndex    int
	hasPlural   bool
	seenMsgid   bool
	seenMsgstr  bool

	kw      keyword
	kwIndex int
}

// ParseFile reads and parses the PO file at path.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// ParseString parses PO text held in memory. The resulting catalog has no
// filename.
func ParseString(text string) (*File, error) {
	return Parse(strings.NewReader(text), "")
}

// Parse reads PO text from r. filename is recorded on the catalog and used
// in error messages; it may be empty.
func Parse(r io.Reader, filename string) (*File, error) {
	p := &parser{
		filename: filename,
		file:     NewFile(filename),
		seen:     make(map[Key]bool),
	}
	p.reset()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.consume(strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if err := p.flush(); err != nil {
		return nil, err
	}
	return p.file, nil
}

func (p *parser) errorf(format string, args ...any) error {
	name := p.filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Errorf("%s:%d: %s", name, p.line, fmt.Sprintf(format, args...))
}

func (p *parser) reset() {
	p.started = false
	p.obsolete = false
	p.transNotes = nil
	p.devNotes = nil
	p.locations = nil
	p.typeLines = nil
	p.context = ""
	p.source = ""
	p.plural = ""
	p.prevContext = ""
	p.prevSource = ""
	p.prevPlural = ""
	p.msgstrs = make(map[int]string)
	p.maxIndex = 0
	p.hasPlural = false
	p.seenMsgid = false
	p.seenMsgstr = false
	p.kw = kwNone
	p.kwIndex = 0
}

func (p *parser) consume(line string) error {
	if strings.TrimSpace(line) == "" {
		return p.flush()
	}

	obsolete := false
	if rest, ok := strings.CutPrefix(line, "#~"); ok {
		obsolete = true
		line = strings.TrimPrefix(rest, " ")
	}

	// A new message block starts when a comment, msgctxt or msgid shows up
	// after the previous entry's msgstr, even without a separating blank
	// line.
	if p.seenMsgstr && startsNewEntry(line) {
		if err := p.flush(); err != nil {
			return err
		}
	}
	if obsolete {
		p.obsolete = true
	}

	switch {
	case strings.HasPrefix(line, "#:"):
		p.started = true
		p.locations = append(p.locations, strings.Fields(line[2:])...)
		return nil
	case strings.HasPrefix(line, "#."):
		p.started = true
		p.devNotes = append(p.devNotes, strings.TrimPrefix(line[2:], " "))
		return nil
	case strings.HasPrefix(line, "#,"):
		p.started = true
		p.typeLines = append(p.typeLines, line)
		return nil
	case strings.HasPrefix(line, "#|"):
		p.started = true
		return p.consumePrev(strings.TrimPrefix(line[2:], " "))
	case strings.HasPrefix(line, "#"):
		p.started = true
		p.transNotes = append(p.transNotes, strings.TrimPrefix(line[1:], " "))
		return nil
	}

	return p.consumeKeyword(line)
}

// startsNewEntry reports whether line (with any "#~" prefix removed) opens a
// new message when the current one already has a translation.
func startsNewEntry(line string) bool {
	return strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "msgctxt") ||
		(strings.HasPrefix(line, "msgid") && !strings.HasPrefix(line, "msgid_plural"))
}

func (p *parser) consumePrev(rest string) error {
	if strings.HasPrefix(rest, `"`) {
		if p.kw < kwPrevMsgctxt {
			return p.errorf("unexpected #| continuation")
		}
		return p.appendString(rest)
	}
	switch {
	case strings.HasPrefix(rest, "msgid_plural"):
		p.kw = kwPrevMsgidPlural
		return p.appendString(strings.TrimSpace(rest[len("msgid_plural"):]))
	case strings.HasPrefix(rest, "msgid"):
		p.kw = kwPrevMsgid
		return p.appendString(strings.TrimSpace(rest[len("msgid"):]))
	case strings.HasPrefix(rest, "msgctxt"):
		p.kw = kwPrevMsgctxt
		return p.appendString(strings.TrimSpace(rest[len("msgctxt"):]))
	}
	return p.errorf("malformed #| line %q", rest)
}

func (p *parser) consumeKeyword(line string) error {
	switch {
	case strings.HasPrefix(line, `"`):
		if p.kw == kwNone {
			return p.errorf("string continuation outside a message")
		}
		return p.appendString(line)
	case strings.HasPrefix(line, "msgctxt"):
		p.started = true
		p.kw = kwMsgctxt
		return p.appendString(strings.TrimSpace(line[len("msgctxt"):]))
	case strings.HasPrefix(line, "msgid_plural"):
		p.started = true
		p.kw = kwMsgidPlural
		p.hasPlural = true
		return p.appendString(strings.TrimSpace(line[len("msgid_plural"):]))
	case strings.HasPrefix(line, "msgid"):
		p.started = true
		p.kw = kwMsgid
		p.seenMsgid = true
		return p.appendString(strings.TrimSpace(line[len("msgid"):]))
	case strings.HasPrefix(line, "msgstr["):
		end := strings.IndexByte(line, ']')
		if end < 0 {
			return p.errorf("malformed msgstr index")
		}
		idx, err := strconv.Atoi(line[len("msgstr["):end])
		if err != nil || idx < 0 {
			return p.errorf("malformed msgstr index")
		}
		p.started = true
		p.kw = kwMsgstr
		p.kwIndex = idx
		p.hasPlural = true
		p.seenMsgstr = true
		if idx > p.maxIndex {
			p.maxIndex = idx
		}
		return p.appendString(strings.TrimSpace(line[end+1:]))
	case strings.HasPrefix(line, "msgstr"):
		p.started = true
		p.kw = kwMsgstr
		p.kwIndex = 0
		p.seenMsgstr = true
		return p.appendString(strings.TrimSpace(line[len("msgstr"):]))
	}
	return p.errorf("unrecognized line %q", line)
}

func (p *parser) appendString(quoted string) error {
	s, err := unquote(quoted)
	if err != nil {
		return p.errorf("%v", err)
	}
	switch p.kw {
	case kwMsgctxt:
		p.context += s
	case kwMsgid:
		p.source += s
	case kwMsgidPlural:
		p.plural += s
	case kwMsgstr:
		p.msgstrs[p.kwIndex] += s
	case kwPrevMsgctxt:
		p.prevContext += s
	case kwPrevMsgid:
		p.prevSource += s
	case kwPrevMsgidPlural:
		p.prevPlural += s
	default:
		return p.errorf("string continuation outside a message")
	}
	return nil
}

func (p *parser) flush() error {
	if !p.started {
		return nil
	}
	if !p.seenMsgid {
		return p.errorf("comment block without a message")
	}

	e := NewEntry(p.context, p.source)
	e.pluralSource = p.plural
	e.hasPlural = p.hasPlural
	e.obsolete = p.obsolete
	e.transNotes = p.transNotes
	e.devNotes = p.devNotes
	e.locations = p.locations
	e.typeComments = p.typeLines
	e.prevContext = p.prevContext
	e.prevSource = p.prevSource
	e.prevPlural = p.prevPlural
	if p.hasPlural {
		forms := make([]string, p.maxIndex+1)
		for i := range forms {
			forms[i] = p.msgstrs[i]
		}
		e.target = PluralTarget(forms...)
	} else {
		e.target = SingleTarget(p.msgstrs[0])
	}

	if p.seen[e.Key()] {
		return p.errorf("duplicate message %q (context %q)", e.source, e.context)
	}
	p.seen[e.Key()] = true

	p.file.AddUnit(e)
	p.reset()
	return nil
}

// unquote decodes one quoted PO string segment.
func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("malformed string %q", s)
	}
	body := s[1 : len(s)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("trailing backslash in %q", s)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			return "", fmt.Errorf("unsupported escape \\%c in %q", body[i], s)
		}
	}
	return b.String(), nil
}
