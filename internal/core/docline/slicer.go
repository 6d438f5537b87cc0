package docline

import (
	"errors"
	"strings"
)

// ErrMalformedRange reports a doc range that does not align to whole
// lines of the table. Callers treat the comment as unverifiable and skip
// it rather than guessing at boundaries
var ErrMalformedRange = errors.New("docline: range does not align to line boundaries")

// Slice returns the lines covered by [off, off+length) with the comment
// marker and the minimum common leading whitespace stripped from each.
// Offsets on the returned lines are absolute into the original file.
//
// The range must start at a line start and end at a line end; the final
// line's terminator may be excluded from the range (parsers commonly
// report comment ends before the trailing newline)
func Slice(t *Table, off, length int, marker string) ([]Line, error) {
	if t == nil || length <= 0 || off < 0 || off+length > t.size {
		return nil, ErrMalformedRange
	}
	end := off + length

	first := t.LineIndex(off)
	if first < 0 || t.Start(first) != off {
		return nil, ErrMalformedRange
	}
	last := t.LineIndex(end - 1)
	if last < 0 {
		return nil, ErrMalformedRange
	}
	if lineEnd := t.End(last); end != lineEnd {
		// tolerate a range that stops just short of the terminator
		if !(end == lineEnd-1 && t.src[lineEnd-1] == '\n') {
			return nil, ErrMalformedRange
		}
	}

	out := make([]Line, 0, last-first+1)
	for i := first; i <= last; i++ {
		s, e := t.Start(i), t.End(i)
		raw := string(t.src[s:e])
		out = append(out, Line{
			Text:   strings.TrimRight(raw, "\r\n"),
			Offset: s,
			Length: e - s,
		})
	}

	stripIndent(out)
	stripMarker(out, marker)
	return out, nil
}

// stripIndent removes the minimum common leading whitespace shared by
// every non-empty line, in place
func stripIndent(lines []Line) {
	indent := -1
	for _, ln := range lines {
		if strings.TrimSpace(ln.Text) == "" {
			continue
		}
		n := leadingWhitespace(ln.Text)
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return
	}
	for i := range lines {
		if len(lines[i].Text) >= indent {
			lines[i].Text = lines[i].Text[indent:]
		} else {
			lines[i].Text = ""
		}
	}
}

// stripMarker removes the doc marker token plus at most one following
// space from each line that carries it. Extra spaces after the marker
// are kept, they encode bullet nesting
func stripMarker(lines []Line, marker string) {
	if marker == "" {
		return
	}
	for i := range lines {
		rest, ok := strings.CutPrefix(lines[i].Text, marker)
		if !ok {
			continue
		}
		if len(rest) > 0 && rest[0] == ' ' {
			rest = rest[1:]
		}
		lines[i].Text = rest
	}
}

func leadingWhitespace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return len(s)
}
