package assembly

// Stats represents high-level counters for one assembly run.
type Stats struct {
	// Reads is the number of reads handed to the run, including reads that
	// cleaned down to nothing.
	Reads int
	// EmptyReads is the number of reads whose sequence was empty after
	// cleaning.
	EmptyReads int
	// PairsScanned is the number of ordered read pairs examined for
	// suffix-prefix overlaps.
	PairsScanned int
	// SuffixPrefix and Containment count overlap candidates found per kind.
	SuffixPrefix int
	Containment  int
	// RejectedDisjoint counts candidates whose declared ranges do not overlap
	// at all.
	RejectedDisjoint int
	// RejectedShortImplied counts candidates rejected because the
	// position-implied overlap was below the minimum.
	RejectedShortImplied int
	// RejectedByPosition counts candidates rejected by the tolerance or
	// nesting checks.
	RejectedByPosition int
	// PlacedReads is the number of reads copied into the buffer.
	PlacedReads int
	// TrimmedReads counts reads trimmed to fit explicit bounds.
	TrimmedReads int
	// Conflicts counts buffer positions where two reads wrote different
	// non-gap symbols.
	Conflicts int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Reads += o.Reads
	s.EmptyReads += o.EmptyReads
	s.PairsScanned += o.PairsScanned
	s.SuffixPrefix += o.SuffixPrefix
	s.Containment += o.Containment
	s.RejectedDisjoint += o.RejectedDisjoint
	s.RejectedShortImplied += o.RejectedShortImplied
	s.RejectedByPosition += o.RejectedByPosition
	s.PlacedReads += o.PlacedReads
	s.TrimmedReads += o.TrimmedReads
	s.Conflicts += o.Conflicts
	return s
}
