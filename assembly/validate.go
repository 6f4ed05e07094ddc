package assembly

import (
	"github.com/biogo/store/interval"
	"github.com/grailbio/base/log"
)

// Overlap is a Candidate confirmed consistent with the reads' declared
// genomic coordinates. Read-only once created.
type Overlap struct {
	Candidate
	// Genomic is the intersection of the two reads' declared spans.
	Genomic Span
}

// readRange adapts a read's declared span to the biogo interval store.
type readRange struct {
	span Span
	id   uintptr
}

func (r readRange) Overlap(b interval.IntRange) bool {
	return r.span.Start <= b.End && r.span.End >= b.Start
}
func (r readRange) Range() interval.IntRange {
	return interval.IntRange{Start: r.span.Start, End: r.span.End}
}
func (r readRange) ID() uintptr { return r.id }

// ValidatePositions cross-checks overlap candidates against the reads'
// declared coordinates and keeps only the consistent subset. Sequence
// similarity alone produces false positives on repetitive or low-complexity
// regions; the declared positions are treated as ground truth about the
// experiment design and silently override what the bases suggest.
//
// A suffix-prefix candidate survives when the declared spans imply an overlap
// of at least opts.MinImpliedOverlap bases and the implied length agrees with
// the sequence-derived length within max(opts.PosToleranceFloor,
// opts.PosToleranceFrac*implied) bases. A containment candidate survives when
// one declared span is nested in the other.
func ValidatePositions(reads []Read, cands []Candidate, opts Opts, stats *Stats) []Overlap {
	opts = opts.sanitize()
	tree := &interval.IntTree{}
	for i, r := range reads {
		if len(r.Seq) == 0 {
			continue
		}
		if err := tree.Insert(readRange{span: r.DeclaredSpan(), id: uintptr(i)}, false); err != nil {
			log.Panicf("assembly: insert declared range for %s: %v", r.Name, err)
		}
	}

	var out []Overlap
	for _, c := range cands {
		srcSpan := reads[c.Source].DeclaredSpan()
		inter, ok := declaredIntersection(tree, srcSpan, c.Target)
		if !ok {
			stats.RejectedDisjoint++
			continue
		}
		implied := inter.Len()
		if implied < opts.MinImpliedOverlap {
			stats.RejectedShortImplied++
			continue
		}
		switch c.Kind {
		case SuffixPrefix:
			tol := maxInt(opts.PosToleranceFloor, int(opts.PosToleranceFrac*float64(implied)))
			if abs(implied-c.Length) > tol {
				stats.RejectedByPosition++
				continue
			}
		case Containment:
			// Nesting means the intersection coincides with one of the two
			// declared spans.
			if inter != srcSpan && inter != reads[c.Target].DeclaredSpan() {
				stats.RejectedByPosition++
				continue
			}
		}
		out = append(out, Overlap{Candidate: c, Genomic: inter})
	}
	return out
}

// declaredIntersection queries the tree for the declared ranges meeting span
// and, when the read identified by want is among them, returns the
// intersection of span with that read's stored range. Disjoint pairs report
// false.
func declaredIntersection(tree *interval.IntTree, span Span, want int) (Span, bool) {
	for _, e := range tree.Get(readRange{span: span}) {
		if e.ID() != uintptr(want) {
			continue
		}
		r := e.Range()
		return Span{Start: maxInt(span.Start, r.Start), End: minInt(span.End, r.End)}, true
	}
	return Span{}, false
}
