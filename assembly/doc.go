// Package assembly implements position-constrained assembly of Sanger
// sequencing reads.
//
// The pipeline has four stages, run in order for one request:
//
//  1. Cleaning: raw read text is reduced to its IUPAC nucleotide payload and
//     N-dominated ends are trimmed (read.go).
//  2. Overlap finding: every read pair is scanned for suffix-prefix and
//     containment overlaps using IUPAC-aware per-base similarity (overlap.go).
//  3. Position validation: overlaps whose implied genomic footprint
//     contradicts the user-declared read coordinates are discarded
//     (validate.go).
//  4. Assembly: reads are copied into a buffer spanning exactly the declared
//     coordinate range, with deterministic per-base conflict resolution
//     (assemble.go).
//
// A run owns all of its state; nothing is shared between runs, so callers may
// invoke Run concurrently from independent goroutines.
package assembly
