// Package docsplit finds the boundary between a doc comment's summary
// block and its parameters section
package docsplit

import (
	"errors"
	"strings"

	"doclint/internal/core/docline"
)

// Header is the literal parameters-section header. Matching is exact and
// case-sensitive; "- parameters:" or "- Parameters :" do not qualify
const Header = "- Parameters:"

// ErrNoBoundary reports a comment with neither a blank separator nor the
// parameters header. The matcher treats this as invalid structure
var ErrNoBoundary = errors.New("docsplit: no summary/parameters boundary")

// Blocks is the result of one split: the summary lines and the
// parameters-section lines, both borrowed from the input slice
type Blocks struct {
	Summary []docline.Line
	Params  []docline.Line
}

// Split scans lines in order for the first boundary: a line that is
// blank after trimming, or a line exactly equal to Header. The first
// qualifying line wins even when the other form appears later.
//
// A blank boundary is excluded from both blocks; the header line stays
// at the head of the parameters block so the parser can recognize the
// nested form
func Split(lines []docline.Line) (Blocks, error) {
	for i, ln := range lines {
		if ln.Text == Header {
			return Blocks{Summary: lines[:i], Params: lines[i:]}, nil
		}
		if strings.TrimSpace(ln.Text) == "" {
			return Blocks{Summary: lines[:i], Params: lines[i+1:]}, nil
		}
	}
	return Blocks{}, ErrNoBoundary
}
