// Package docparam parses the parameters section of a doc comment into
// ordered entries, one per documented parameter
package docparam

import (
	"errors"
	"strings"

	"doclint/internal/core/docline"
	"doclint/internal/core/docsplit"
)

// bullet is the list marker both surface forms use
const bullet = "- "

// keyword prefixes a flat-form entry, as in "- Parameter x: does things"
const keyword = "Parameter "

// ErrBadShape reports a parameters section that matches neither accepted
// form: a bullet without a colon, inconsistent indentation, or stray
// text between entries. The defect is the section's shape, not one
// entry, so violations anchor at the doc-comment start
var ErrBadShape = errors.New("docparam: parameters section is not a recognizable list")

// Entry is one parsed parameter bullet. Order of a parsed sequence is
// the encounter order and is significant
type Entry struct {
	// Name is the text between the bullet (and optional keyword) and the
	// first colon, exactly as written
	Name string

	// Rest is the entry text after the bullet and optional keyword, with
	// the colon and description still attached. The matcher checks
	// "<param>:" as a literal prefix of Rest
	Rest string

	// Line is the source line the entry came from
	Line docline.Line
}

// Parse reads the parameters block produced by docsplit. The nested
// form ("- Parameters:" header plus indented bullets) is tried first;
// when the first content line is not the header literal, the flat form
// ("- Parameter x:" or "- x:" per line) is parsed instead
func Parse(lines []docline.Line) ([]Entry, error) {
	content := skipBlank(lines)
	if len(content) == 0 {
		return nil, nil
	}
	if content[0].Text == docsplit.Header {
		return parseNested(content[1:])
	}
	return parseFlat(content)
}

// parseNested expects every entry bullet at one shared indentation level
// deeper than the header. Lines indented further continue the previous
// entry's description
func parseNested(lines []docline.Line) ([]Entry, error) {
	var out []Entry
	indent := -1
	for _, ln := range lines {
		if strings.TrimSpace(ln.Text) == "" {
			continue
		}
		n := leadingSpace(ln.Text)
		if indent < 0 {
			if n == 0 {
				// bullets must sit one level below the header
				return nil, ErrBadShape
			}
			indent = n
		}
		if n > indent && len(out) > 0 {
			continue // description continuation
		}
		if n != indent {
			return nil, ErrBadShape
		}
		rest, ok := strings.CutPrefix(ln.Text[n:], bullet)
		if !ok {
			return nil, ErrBadShape
		}
		e, err := entryOf(rest, ln)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// parseFlat expects every entry bullet at the block's top indentation,
// optionally introduced by the "Parameter" keyword. Flat entries are
// one line each; any indentation drift fails the parse
func parseFlat(lines []docline.Line) ([]Entry, error) {
	var out []Entry
	indent := leadingSpace(lines[0].Text)
	for _, ln := range lines {
		if strings.TrimSpace(ln.Text) == "" {
			continue
		}
		n := leadingSpace(ln.Text)
		if n != indent {
			return nil, ErrBadShape
		}
		rest, ok := strings.CutPrefix(ln.Text[n:], bullet)
		if !ok {
			return nil, ErrBadShape
		}
		// "- Parameter x:" and "- x:" are both accepted
		if kw, has := strings.CutPrefix(rest, keyword); has {
			rest = kw
		}
		e, err := entryOf(rest, ln)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// entryOf builds an Entry from the text after bullet/keyword stripping.
// A bullet without a colon is a shape error
func entryOf(rest string, ln docline.Line) (Entry, error) {
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return Entry{}, ErrBadShape
	}
	return Entry{Name: rest[:colon], Rest: rest, Line: ln}, nil
}

func skipBlank(lines []docline.Line) []docline.Line {
	for i, ln := range lines {
		if strings.TrimSpace(ln.Text) != "" {
			return lines[i:]
		}
	}
	return nil
}

func leadingSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return len(s)
}
