package assembly

// iupacMask maps an IUPAC nucleotide symbol to the 4-bit set of concrete
// bases it can denote (bit0=A, bit1=C, bit2=G, bit3=T). Symbols outside the
// alphabet map to zero. Lowercase input is accepted so that the cleaner can
// consult the table before uppercasing.
var iupacMask [256]uint8

// complement maps an IUPAC symbol to its complement, preserving ambiguity
// codes (R={A,G} pairs with Y={C,T}, etc). Zero for non-IUPAC symbols.
var complement [256]byte

func init() {
	masks := []struct {
		sym  byte
		mask uint8
	}{
		{'A', 1}, {'C', 2}, {'G', 4}, {'T', 8},
		{'R', 1 | 4}, {'Y', 2 | 8}, {'S', 2 | 4}, {'W', 1 | 8},
		{'K', 4 | 8}, {'M', 1 | 2},
		{'B', 2 | 4 | 8}, {'D', 1 | 4 | 8}, {'H', 1 | 2 | 8}, {'V', 1 | 2 | 4},
		{'N', 1 | 2 | 4 | 8},
	}
	for _, m := range masks {
		iupacMask[m.sym] = m.mask
		iupacMask[m.sym+'a'-'A'] = m.mask
	}
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'},
		{'R', 'Y'}, {'S', 'S'}, {'W', 'W'}, {'K', 'M'},
		{'B', 'V'}, {'D', 'H'}, {'N', 'N'},
	}
	for _, p := range pairs {
		complement[p.a] = p.b
		complement[p.b] = p.a
	}
}

// isIUPAC reports whether c is a recognized nucleotide symbol (either case).
func isIUPAC(c byte) bool { return iupacMask[c] != 0 }

// isConcrete reports whether c is an unambiguous base (one of A, C, G, T).
func isConcrete(c byte) bool {
	m := iupacMask[c]
	return m != 0 && m&(m-1) == 0
}

// baseSimilarity scores one aligned symbol pair: 1 for identical symbols,
// 0.5 when one symbol's base set contains the other's, 0 otherwise. Identity
// and set containment are the only recognized relations; partially
// intersecting codes (e.g. R vs W) score 0.
func baseSimilarity(a, b byte) float64 {
	if a == b {
		return 1
	}
	ma, mb := iupacMask[a], iupacMask[b]
	if ma == 0 || mb == 0 {
		return 0
	}
	if i := ma & mb; i == ma || i == mb {
		return 0.5
	}
	return 0
}

// compatible reports whether two symbols can denote the same underlying base
// under the containment rule used by baseSimilarity.
func compatible(a, b byte) bool { return baseSimilarity(a, b) > 0 }

// reverseComplement computes the reverse complement of seq, mapping ambiguity
// codes to their complementary codes. Unrecognized symbols become N.
func reverseComplement(seq string) string {
	n := len(seq)
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		buf[i] = c
	}
	return string(buf)
}
