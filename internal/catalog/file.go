package catalog

import "strings"

// File is the PO implementation of Store.
type File struct {
	filename string
	units    []Unit
}

// NewFile returns an empty catalog. filename may be "" for in-memory
// catalogs; it is only used for labels in merge diagnostics.
func NewFile(filename string) *File {
	return &File{filename: filename}
}

func (f *File) Filename() string { return f.filename }
func (f *File) Units() []Unit    { return f.units }

// AddUnit appends u and makes f its owning store.
func (f *File) AddUnit(u Unit) {
	if e, ok := u.(*Entry); ok {
		e.store = f
	}
	f.units = append(f.units, u)
}

// ParseHeader returns the fields of the first header unit, or an empty map
// when the catalog has no header.
func (f *File) ParseHeader() map[string]string {
	for _, u := range f.units {
		if u.IsHeader() {
			_, fields := ParseHeaderString(u.GetTarget().String())
			return fields
		}
	}
	return map[string]string{}
}

// ParseHeaderString splits an RFC-822-style header body into its fields,
// returning the keys in order of first appearance alongside the value map.
func ParseHeaderString(s string) ([]string, map[string]string) {
	var keys []string
	fields := make(map[string]string)
	for line := range strings.SplitSeq(s, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || key == "" {
			continue
		}
		if _, seen := fields[key]; !seen {
			keys = append(keys, key)
		}
		fields[key] = strings.TrimPrefix(value, " ")
	}
	return keys, fields
}
