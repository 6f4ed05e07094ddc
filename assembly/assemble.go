package assembly

import (
	"errors"

	"github.com/grailbio/base/log"
)

// ErrNoValidSequences is returned when a run has no nonempty reads to place.
var ErrNoValidSequences = errors.New("assembly: no valid sequences")

// gap is the buffer fill symbol. A buffer position holding gap has not been
// written by any read.
const gap = 'N'

// Result is the outcome of one assembly run. Read-only once returned.
type Result struct {
	// Seq is the final buffer contents: IUPAC symbols, gap positions as N.
	Seq string
	// Bounds is the genomic span the buffer covers. len(Seq) == Bounds.Len().
	Bounds Span
	// RealBases is the number of non-gap positions in Seq.
	RealBases int
	// GapBases is the number of gap positions in Seq.
	GapBases int
	// Coverage is RealBases over the buffer length, as a percentage.
	Coverage float64
	// Overlaps is the validated overlap set the run was given. It may be
	// empty: assembly then proceeds purely from declared positions.
	Overlaps []Overlap
	// SpanMismatch is set when the buffer length disagrees with the span
	// recomputed independently from the reads' declared coordinates. The
	// buffer itself is still well-formed; only the claim that coverage
	// reflects the full expected span may be off.
	SpanMismatch bool
	// Stats are the counters accumulated over the whole run.
	Stats Stats
}

// Assemble places each nonempty read into a buffer spanning the declared
// coordinate range and resolves per-base conflicts deterministically. The
// buffer length is exactly bounds.Len(), never more: with explicit
// opts.Bounds, reads extending past the bounds are trimmed to fit, and each
// trim is logged.
//
// An empty validated overlap set is not an error; placement is then guided by
// declared positions alone under the identical conflict rules.
func Assemble(reads []Read, overlaps []Overlap, opts Opts, stats *Stats) (*Result, error) {
	opts = opts.sanitize()
	live := make([]Read, 0, len(reads))
	for _, r := range reads {
		if len(r.Seq) == 0 {
			stats.EmptyReads++
			continue
		}
		live = append(live, r)
	}
	if len(live) == 0 {
		return nil, ErrNoValidSequences
	}

	bounds := declaredBounds(live)
	if opts.Bounds != nil {
		bounds = *opts.Bounds
	}
	buf := make([]byte, bounds.Len())
	for i := range buf {
		buf[i] = gap
	}

	for _, r := range live {
		span := r.DeclaredSpan()
		clipped, ok := span.Intersect(bounds)
		if !ok {
			log.Error.Printf("assembly: read %s (span %d-%d) lies entirely outside bounds %d-%d, dropped",
				r.Name, span.Start, span.End, bounds.Start, bounds.End)
			stats.TrimmedReads++
			continue
		}
		if clipped != span {
			log.Error.Printf("assembly: read %s (span %d-%d) trimmed to bounds %d-%d",
				r.Name, span.Start, span.End, bounds.Start, bounds.End)
			stats.TrimmedReads++
		}
		for g := clipped.Start; g <= clipped.End; g++ {
			old := buf[g-bounds.Start]
			base := r.Seq[g-span.Start]
			if old != gap && base != gap && old != base {
				stats.Conflicts++
			}
			buf[g-bounds.Start] = resolveBase(old, base)
		}
		stats.PlacedReads++
	}

	res := &Result{
		Seq:      string(buf),
		Bounds:   bounds,
		Overlaps: overlaps,
	}
	for _, c := range buf {
		if c == gap {
			res.GapBases++
		} else {
			res.RealBases++
		}
	}
	res.Coverage = float64(res.RealBases) / float64(len(buf)) * 100

	// Independent consistency check: recompute the expected span straight
	// from the declared coordinates and compare against the buffer.
	if expected := declaredBounds(live).Len(); expected != len(buf) {
		log.Error.Printf("assembly: buffer length %d != expected span %d", len(buf), expected)
		res.SpanMismatch = true
	}
	res.Stats = *stats
	return res, nil
}

// resolveBase merges a newly placed symbol into a buffer position. Gaps lose
// to concrete symbols; among compatible symbols the unambiguous base wins;
// irreconcilable concrete symbols keep the earlier writer's base. The result
// depends only on (old, base), so placement order fully determines the
// output.
func resolveBase(old, base byte) byte {
	switch {
	case old == gap:
		return base
	case base == gap:
		return old
	case old == base:
		return old
	case compatible(old, base):
		if !isConcrete(old) && isConcrete(base) {
			return base
		}
		return old
	default:
		// First writer wins. Without per-base trace confidence there is no
		// principled way to pick; keep it deterministic instead.
		return old
	}
}

// declaredBounds returns the union of the reads' declared spans.
func declaredBounds(reads []Read) Span {
	b := reads[0].DeclaredSpan()
	for _, r := range reads[1:] {
		s := r.DeclaredSpan()
		b.Start = minInt(b.Start, s.Start)
		b.End = maxInt(b.End, s.End)
	}
	return b
}

// Run executes one assembly request end to end: overlap finding, position
// validation, then boundary-constrained placement. Each stage accumulates its
// own counters; Run merges them into the result. Each invocation owns all of
// its state.
func Run(reads []Read, opts Opts) (*Result, error) {
	opts = opts.sanitize()
	findStats := Stats{}
	cands := FindOverlaps(reads, opts, &findStats)
	valStats := Stats{}
	overlaps := ValidatePositions(reads, cands, opts, &valStats)
	stats := Stats{Reads: len(reads)}.Merge(findStats).Merge(valStats)
	return Assemble(reads, overlaps, opts, &stats)
}
