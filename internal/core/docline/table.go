// Package docline slices a doc comment's byte range into plain-text lines
// while keeping every line anchored to its absolute byte offset in the file
package docline

// Line is one physical line of a doc comment after marker and indent
// stripping. Offset and Length always describe the original file bytes,
// so a violation reported against a Line can be located in the source
type Line struct {
	// Text is the line content with the comment marker and the common
	// leading indentation removed. Never includes the line terminator
	Text string

	// Offset is the byte offset of the first character of the original
	// (unstripped) line in the file
	Offset int

	// Length is the byte length of the original line including its
	// terminator, when present
	Length int
}

// Table maps byte offsets to physical line boundaries for one file.
// Build it once per file and share it read-only across checks
type Table struct {
	src []byte

	// starts[i] is the byte offset of line i; always starts[0] == 0
	starts []int
	size   int
}

// NewTable indexes src's line boundaries. Lines are terminated by '\n';
// a trailing unterminated line still counts. The table borrows src and
// never mutates it
func NewTable(src []byte) *Table {
	t := &Table{src: src, size: len(src)}
	t.starts = append(t.starts, 0)
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			t.starts = append(t.starts, i+1)
		}
	}
	return t
}

// Len returns the number of physical lines
func (t *Table) Len() int { return len(t.starts) }

// Size returns the indexed file size in bytes
func (t *Table) Size() int { return t.size }

// Start returns the byte offset of line i (0-based)
func (t *Table) Start(i int) int { return t.starts[i] }

// End returns the exclusive end offset of line i, including the
// terminator when the line has one
func (t *Table) End(i int) int {
	if i+1 < len(t.starts) {
		return t.starts[i+1]
	}
	return t.size
}

// LineIndex returns the 0-based line holding byte offset off, or -1 when
// off is out of range
func (t *Table) LineIndex(off int) int {
	if off < 0 || off >= t.size {
		return -1
	}
	// binary search over starts
	lo, hi := 0, len(t.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t.starts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
