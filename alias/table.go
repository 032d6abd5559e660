package alias

import "github.com/vidcapture/vcs/frame"

// Alias replaces one capture resolution with another. The replacement is
// matched by (width, height) equality on From; bit depth is not part of the
// comparison because aliasing corrects a misdetected geometry, not a color
// format.
type Alias struct {
	From frame.Resolution
	To   frame.Resolution
}

// Table is an ordered collection of aliases, established once from an
// external source at startup and immutable thereafter unless explicitly
// replaced (spec.md §3). Lookup is first-match in insertion order.
type Table struct {
	entries []Alias
}

// NewTable builds a Table from an ordered list of aliases.
func NewTable(entries ...Alias) *Table {
	t := &Table{}
	t.entries = append(t.entries, entries...)
	return t
}

// Replace atomically swaps the table's entries for a new ordered set.
func (t *Table) Replace(entries []Alias) {
	t.entries = append([]Alias(nil), entries...)
}

// Lookup returns the first alias whose From matches r's (width, height),
// and whether one was found.
func (t *Table) Lookup(r frame.Resolution) (frame.Resolution, bool) {
	for _, a := range t.entries {
		if a.From.Width == r.Width && a.From.Height == r.Height {
			return a.To, true
		}
	}
	return frame.Resolution{}, false
}

// Entries returns a copy of the table's current aliases, in lookup order.
func (t *Table) Entries() []Alias {
	return append([]Alias(nil), t.entries...)
}
