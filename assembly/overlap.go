package assembly

// OverlapKind enumerates the recognized overlap geometries.
type OverlapKind int

const (
	// SuffixPrefix overlaps align the tail of the source read with the head
	// of the target read.
	SuffixPrefix OverlapKind = iota
	// Containment overlaps align the whole target read inside the source
	// read.
	Containment
)

// String returns a human-readable label for k.
func (k OverlapKind) String() string {
	switch k {
	case SuffixPrefix:
		return "suffix-prefix"
	case Containment:
		return "containment"
	}
	return "invalid"
}

// Candidate describes a proposed adjacency between two reads, produced by
// FindOverlaps and consumed (possibly discarded) by ValidatePositions.
type Candidate struct {
	// Source and Target index the reads slice handed to FindOverlaps.
	Source, Target int
	// SourceName and TargetName are the display names of the two reads.
	SourceName, TargetName string
	// Kind is the overlap geometry.
	Kind OverlapKind
	// Length is the number of aligned bases.
	Length int
	// Similarity is the mean per-base similarity of the aligned region,
	// in [0, 1].
	Similarity float64
	// SourceOff and TargetOff are the 0-based offsets of the aligned region
	// within each read.
	SourceOff, TargetOff int
	// SourceSeq and TargetSeq are the aligned subsequences.
	SourceSeq, TargetSeq string
}

// Similarity computes the mean per-base similarity of two equal-length
// sequences: identical symbols score 1, containment-compatible ambiguity
// codes score 0.5, anything else 0. It is symmetric in its arguments.
func Similarity(x, y string) float64 {
	if len(x) != len(y) {
		panic("assembly.Similarity: length mismatch")
	}
	if len(x) == 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(x); i++ {
		total += baseSimilarity(x[i], y[i])
	}
	return total / float64(len(x))
}

// FindOverlaps scans every read pair for overlaps: suffix-prefix in both
// orders, plus containment of the strictly shorter read in the longer one.
// Candidates below opts.SimThreshold or opts.MinOverlap are not reported.
// The returned set is unordered as far as callers are concerned.
func FindOverlaps(reads []Read, opts Opts, stats *Stats) []Candidate {
	opts = opts.sanitize()
	var out []Candidate
	for i := range reads {
		for j := range reads {
			if i == j {
				continue
			}
			stats.PairsScanned++
			if c, ok := findSuffixPrefix(reads, i, j, opts); ok {
				stats.SuffixPrefix++
				out = append(out, c)
			}
		}
	}
	for i := range reads {
		for j := i + 1; j < len(reads); j++ {
			long, short := i, j
			if len(reads[i].Seq) < len(reads[j].Seq) {
				long, short = j, i
			}
			if len(reads[short].Seq) == len(reads[long].Seq) {
				// Equal lengths are fully covered by the suffix-prefix scan.
				continue
			}
			if c, ok := findContainment(reads, long, short, opts); ok {
				stats.Containment++
				out = append(out, c)
			}
		}
	}
	return out
}

// findSuffixPrefix scores every candidate overlap length between the tail of
// reads[src] and the head of reads[dst], keeping the best-scoring length.
// Ties keep the smallest length: a longer overlap must be strictly better to
// displace a shorter one.
func findSuffixPrefix(reads []Read, src, dst int, opts Opts) (Candidate, bool) {
	a, b := reads[src], reads[dst]
	maxL := minInt(minInt(len(a.Seq), len(b.Seq)), opts.MaxScanLength)
	bestL, bestSim := 0, 0.0
	for l := opts.MinOverlap; l <= maxL; l++ {
		sim := Similarity(a.Seq[len(a.Seq)-l:], b.Seq[:l])
		if sim > bestSim {
			bestSim, bestL = sim, l
		}
	}
	if bestL == 0 || bestSim < opts.SimThreshold {
		return Candidate{}, false
	}
	return Candidate{
		Source:     src,
		Target:     dst,
		SourceName: a.Name,
		TargetName: b.Name,
		Kind:       SuffixPrefix,
		Length:     bestL,
		Similarity: bestSim,
		SourceOff:  len(a.Seq) - bestL,
		TargetOff:  0,
		SourceSeq:  a.Seq[len(a.Seq)-bestL:],
		TargetSeq:  b.Seq[:bestL],
	}, true
}

// findContainment slides the strictly shorter read across every position of
// the longer one and keeps the best-scoring placement.
func findContainment(reads []Read, long, short int, opts Opts) (Candidate, bool) {
	a, b := reads[long], reads[short]
	if len(b.Seq) < opts.MinOverlap {
		return Candidate{}, false
	}
	bestOff, bestSim := -1, 0.0
	for off := 0; off+len(b.Seq) <= len(a.Seq); off++ {
		sim := Similarity(a.Seq[off:off+len(b.Seq)], b.Seq)
		if sim > bestSim {
			bestSim, bestOff = sim, off
		}
	}
	if bestOff < 0 || bestSim < opts.SimThreshold {
		return Candidate{}, false
	}
	return Candidate{
		Source:     long,
		Target:     short,
		SourceName: a.Name,
		TargetName: b.Name,
		Kind:       Containment,
		Length:     len(b.Seq),
		Similarity: bestSim,
		SourceOff:  bestOff,
		TargetOff:  0,
		SourceSeq:  a.Seq[bestOff : bestOff+len(b.Seq)],
		TargetSeq:  b.Seq,
	}, true
}
