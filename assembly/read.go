package assembly

import (
	"fmt"
	"strings"
)

// Strand is the user-declared orientation of a read.
type Strand int

const (
	// Forward reads align to the reference axis as given.
	Forward Strand = iota
	// Reverse reads are reverse-complemented before any downstream stage
	// sees them.
	Reverse
	// UnknownStrand reads are treated as forward for coordinate math.
	UnknownStrand
)

// ParseStrand parses a user-facing strand label.
func ParseStrand(s string) (Strand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "fwd", "+":
		return Forward, nil
	case "reverse", "rev", "-":
		return Reverse, nil
	case "unknown", "":
		return UnknownStrand, nil
	}
	return UnknownStrand, fmt.Errorf("unrecognized strand %q", s)
}

// String returns the canonical label for s.
func (s Strand) String() string {
	switch s {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	}
	return "unknown"
}

// Span is a 1-based, inclusive range of genomic coordinates.
type Span struct {
	Start, End int
}

// Len returns the number of positions covered by s.
func (s Span) Len() int { return s.End - s.Start + 1 }

// Intersect returns the intersection of s and o, and whether it is nonempty.
func (s Span) Intersect(o Span) (Span, bool) {
	r := Span{Start: maxInt(s.Start, o.Start), End: minInt(s.End, o.End)}
	return r, r.Start <= r.End
}

// Contains reports whether o is nested entirely within s.
func (s Span) Contains(o Span) bool { return s.Start <= o.Start && o.End <= s.End }

// A Read is one cleaned, orientation-resolved Sanger read. Reads are
// immutable once constructed.
type Read struct {
	// Name is the user-assigned display name.
	Name string
	// Seq is the cleaned sequence in reference (forward) orientation: reverse
	// reads are reverse-complemented by NewRead.
	Seq string
	// Strand is the declared orientation of the original read.
	Strand Strand
	// Pos is the declared 1-based coordinate of the read's 5' end (forward)
	// or 3' end (reverse) on the reference axis. It is user-supplied ground
	// truth and never recomputed.
	Pos int
}

// NewRead cleans raw sequence text and resolves its orientation. An empty
// cleaned sequence is a valid, low-information read, not an error.
func NewRead(name, raw string, strand Strand, pos int, opts Opts) Read {
	opts = opts.sanitize()
	seq := Clean(raw, opts)
	if strand == Reverse {
		seq = reverseComplement(seq)
	}
	return Read{Name: name, Seq: seq, Strand: strand, Pos: pos}
}

// DeclaredSpan returns the genomic range the read claims to cover, derived
// from its declared position and cleaned length.
func (r Read) DeclaredSpan() Span {
	if r.Strand == Reverse {
		return Span{Start: r.Pos - len(r.Seq) + 1, End: r.Pos}
	}
	return Span{Start: r.Pos, End: r.Pos + len(r.Seq) - 1}
}

// Clean reduces raw sequence text to its uppercase IUPAC payload and trims
// N-dominated ends. Header lines starting with '>' or ';' are skipped, as is
// any character outside the IUPAC alphabet.
func Clean(raw string, opts Opts) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '>' || line[0] == ';' {
			continue
		}
		for i := 0; i < len(line); i++ {
			c := line[i]
			if !isIUPAC(c) {
				continue
			}
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			b.WriteByte(c)
		}
	}
	return trimEnds(b.String(), opts.TrimWindow, opts.TrimMaxNFrac)
}

// trimEnds removes whole windows from each end of seq until it meets a window
// whose fraction of N calls is below maxNFrac. The qualifying window is kept
// in full. A sequence with no qualifying window trims to empty.
func trimEnds(seq string, window int, maxNFrac float64) string {
	end := len(seq)
	for end > 0 {
		lo := maxInt(0, end-window)
		if nFraction(seq[lo:end]) < maxNFrac {
			break
		}
		end = lo
	}
	start := 0
	for start < end {
		hi := minInt(end, start+window)
		if nFraction(seq[start:hi]) < maxNFrac {
			break
		}
		start = hi
	}
	return seq[start:end]
}

func nFraction(window string) float64 {
	if len(window) == 0 {
		return 1
	}
	n := 0
	for i := 0; i < len(window); i++ {
		if window[i] == 'N' {
			n++
		}
	}
	return float64(n) / float64(len(window))
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
