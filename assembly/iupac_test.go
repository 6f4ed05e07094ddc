package assembly

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestBaseSimilarity(t *testing.T) {
	tests := []struct {
		a, b byte
		want float64
	}{
		{'A', 'A', 1},
		{'A', 'T', 0},
		{'R', 'R', 1},
		{'R', 'A', 0.5}, // R = {A,G}
		{'R', 'C', 0},
		{'R', 'Y', 0},   // disjoint sets
		{'R', 'W', 0},   // intersecting but neither contains the other
		{'R', 'D', 0.5}, // {A,G} within {A,G,T}
		{'N', 'A', 0.5},
		{'N', 'B', 0.5},
		{'A', 'X', 0}, // not a nucleotide symbol
	}
	for _, test := range tests {
		expect.EQ(t, baseSimilarity(test.a, test.b), test.want, "%c vs %c", test.a, test.b)
		expect.EQ(t, baseSimilarity(test.b, test.a), test.want, "%c vs %c", test.b, test.a)
	}
}

func TestIsConcrete(t *testing.T) {
	for _, c := range []byte("ACGT") {
		expect.True(t, isConcrete(c), "%c", c)
	}
	for _, c := range []byte("RYSWKMBDHVN") {
		expect.False(t, isConcrete(c), "%c", c)
	}
	expect.False(t, isConcrete('X'))
}

func TestComplementCoversAlphabet(t *testing.T) {
	for _, c := range []byte("ATGCNRYSWKMBDHV") {
		rc := complement[c]
		expect.True(t, isIUPAC(rc), "%c", c)
		// Complementing twice must round-trip.
		expect.EQ(t, complement[rc], c, "%c", c)
	}
}
