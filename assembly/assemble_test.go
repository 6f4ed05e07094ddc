package assembly

import (
	"math"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestRunTwoReadScenario(t *testing.T) {
	opts := DefaultOpts
	opts.MinOverlap = 4
	opts.SimThreshold = 0.5
	reads := []Read{
		NewRead("s1", "ACGTACGT", Forward, 1, opts),
		NewRead("s2", "ACGTTTTT", Forward, 5, opts),
	}
	res, err := Run(reads, opts)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "ACGTACGTTTTT")
	expect.EQ(t, res.Bounds, Span{Start: 1, End: 12})
	expect.EQ(t, res.RealBases, 12)
	expect.EQ(t, res.GapBases, 0)
	expect.EQ(t, res.Coverage, 100.0)
	expect.False(t, res.SpanMismatch)
}

func TestAssembleBufferSizeInvariant(t *testing.T) {
	tests := []struct {
		reads []Read
		want  int
	}{
		{[]Read{testRead("a", "ACGT", Forward, 1)}, 4},
		{[]Read{
			testRead("a", "ACGT", Forward, 1),
			testRead("b", "ACGT", Forward, 100),
		}, 103},
		{[]Read{
			testRead("a", strings.Repeat("ACGT", 100), Forward, 50),
			testRead("b", "ACGT", Forward, 60),
		}, 400},
		{[]Read{
			testRead("a", "ACGTACGT", Reverse, 20), // span 13-20
			testRead("b", "ACGT", Forward, 18),     // span 18-21
		}, 9},
	}
	for _, test := range tests {
		stats := Stats{}
		res, err := Assemble(test.reads, nil, DefaultOpts, &stats)
		assert.NoError(t, err)
		expect.EQ(t, len(res.Seq), test.want)
		expect.EQ(t, res.Bounds.Len(), test.want)
	}
}

func TestAssembleNoValidSequences(t *testing.T) {
	stats := Stats{}
	_, err := Assemble(nil, nil, DefaultOpts, &stats)
	expect.EQ(t, err, ErrNoValidSequences)

	// Reads that cleaned down to nothing do not count either.
	_, err = Assemble([]Read{testRead("empty", "", Forward, 1)}, nil, DefaultOpts, &stats)
	expect.EQ(t, err, ErrNoValidSequences)
	expect.EQ(t, stats.EmptyReads, 1)

	_, err = Run(nil, DefaultOpts)
	expect.EQ(t, err, ErrNoValidSequences)
}

func TestAssembleConflictFirstWriterWins(t *testing.T) {
	a := testRead("a", "AAAA", Forward, 1)
	b := testRead("b", "GGGG", Forward, 1)

	stats := Stats{}
	res, err := Assemble([]Read{a, b}, nil, DefaultOpts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "AAAA")
	expect.EQ(t, stats.Conflicts, 4)

	// Same order in, same bases out.
	stats = Stats{}
	res2, err := Assemble([]Read{a, b}, nil, DefaultOpts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res2.Seq, res.Seq)

	// Order dependence is part of the contract.
	stats = Stats{}
	res3, err := Assemble([]Read{b, a}, nil, DefaultOpts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res3.Seq, "GGGG")
}

func TestAssembleGapLosesToConcrete(t *testing.T) {
	stats := Stats{}
	res, err := Assemble([]Read{
		testRead("a", "ANAN", Forward, 1),
		testRead("b", "CCCC", Forward, 1),
	}, nil, DefaultOpts, &stats)
	assert.NoError(t, err)
	// N yields to C; concrete disagreements keep the first writer's base.
	expect.EQ(t, res.Seq, "ACAC")
}

func TestAssembleAmbiguityPrefersConcrete(t *testing.T) {
	stats := Stats{}
	res, err := Assemble([]Read{
		testRead("a", "RRRR", Forward, 1),
		testRead("b", "AAAA", Forward, 1),
	}, nil, DefaultOpts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "AAAA")

	res, err = Assemble([]Read{
		testRead("b", "AAAA", Forward, 1),
		testRead("a", "RRRR", Forward, 1),
	}, nil, DefaultOpts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "AAAA")
}

func TestAssembleExplicitBounds(t *testing.T) {
	opts := DefaultOpts
	opts.Bounds = &Span{Start: 3, End: 6}
	stats := Stats{}
	res, err := Assemble([]Read{testRead("a", "ACGTACGT", Forward, 1)}, nil, opts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "GTAC")
	expect.EQ(t, res.Bounds, Span{Start: 3, End: 6})
	expect.EQ(t, stats.TrimmedReads, 1)
	expect.True(t, res.SpanMismatch)
}

func TestAssembleReadOutsideBounds(t *testing.T) {
	opts := DefaultOpts
	opts.Bounds = &Span{Start: 100, End: 103}
	stats := Stats{}
	res, err := Assemble([]Read{testRead("a", "ACGT", Forward, 1)}, nil, opts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "NNNN")
	expect.EQ(t, res.RealBases, 0)
	expect.EQ(t, res.GapBases, 4)
	expect.EQ(t, res.Coverage, 0.0)
	expect.EQ(t, stats.PlacedReads, 0)
}

func TestAssemblePositionGuidedFallback(t *testing.T) {
	// No usable overlap between the reads: assembly proceeds purely from the
	// declared positions, leaving a gap in between.
	reads := []Read{
		testRead("a", "ACGT", Forward, 1),
		testRead("b", "TTTT", Forward, 9),
	}
	stats := Stats{}
	res, err := Assemble(reads, nil, DefaultOpts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "ACGTNNNNTTTT")
	expect.EQ(t, res.RealBases, 8)
	expect.EQ(t, res.GapBases, 4)
	expect.EQ(t, len(res.Overlaps), 0)
}

func TestAssembleReverseReadPlacement(t *testing.T) {
	// A reverse read declared at its 3' end lands on [pos-len+1, pos], in
	// reference orientation.
	rev := NewRead("r", "AACG", Reverse, 8, DefaultOpts) // seq CGTT on 5-8
	fwd := NewRead("f", "ACGT", Forward, 1, DefaultOpts)
	stats := Stats{}
	res, err := Assemble([]Read{fwd, rev}, nil, DefaultOpts, &stats)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "ACGTCGTT")
}

func TestRunSanitizesBadParameters(t *testing.T) {
	opts := DefaultOpts
	opts.SimThreshold = math.NaN()
	opts.MinOverlap = -3
	reads := []Read{
		NewRead("s1", "ACGTACGT", Forward, 1, DefaultOpts),
		NewRead("s2", "ACGTTTTT", Forward, 5, DefaultOpts),
	}
	res, err := Run(reads, opts)
	assert.NoError(t, err)
	expect.EQ(t, res.Seq, "ACGTACGTTTTT")
}

func TestRunStats(t *testing.T) {
	opts := DefaultOpts
	opts.MinOverlap = 4
	opts.SimThreshold = 0.5
	reads := []Read{
		NewRead("s1", "ACGTACGT", Forward, 1, opts),
		NewRead("s2", "ACGTTTTT", Forward, 5, opts),
	}
	res, err := Run(reads, opts)
	assert.NoError(t, err)
	// Counters from all three stages must survive the per-stage merge: the
	// finder's pair scan, the validator's rejections (both directions imply
	// a 4-base overlap, under the hard minimum), and the assembler's
	// placements.
	expect.EQ(t, res.Stats.Reads, 2)
	expect.EQ(t, res.Stats.PairsScanned, 2)
	expect.EQ(t, res.Stats.RejectedShortImplied, 2)
	expect.EQ(t, res.Stats.PlacedReads, 2)
}
