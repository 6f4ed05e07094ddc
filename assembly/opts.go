package assembly

import (
	"math"

	"github.com/grailbio/base/log"
)

// Opts configures one assembly run. The zero value is not usable; start from
// DefaultOpts.
type Opts struct {
	// MinOverlap is the smallest suffix-prefix overlap length considered
	// during overlap finding.
	MinOverlap int
	// SimThreshold is the minimum mean per-base similarity, in (0, 1], for an
	// overlap candidate to be kept.
	SimThreshold float64
	// MaxScanLength caps the suffix-prefix scan; overlaps longer than this are
	// never proposed. Sanger reads top out around a thousand usable bases, so
	// scanning further buys nothing.
	MaxScanLength int

	// TrimWindow and TrimMaxNFrac control end trimming during cleaning: ends
	// are trimmed in TrimWindow-sized blocks until a block has a fraction of N
	// calls below TrimMaxNFrac. These match the historical behavior of the
	// lab tool this engine replaces and should not be changed casually.
	TrimWindow   int
	TrimMaxNFrac float64

	// MinImpliedOverlap is the smallest declared-position-implied overlap, in
	// bases, accepted by the position validator.
	MinImpliedOverlap int
	// PosToleranceFloor and PosToleranceFrac define the validator's tolerance
	// band: max(PosToleranceFloor, PosToleranceFrac*implied) bases.
	PosToleranceFloor int
	PosToleranceFrac  float64

	// Bounds, when non-nil, fixes the output span instead of deriving it from
	// the reads' declared coordinates. Reads extending past explicit bounds
	// are trimmed to fit.
	Bounds *Span
}

// DefaultOpts sets the default values for Opts.
var DefaultOpts = Opts{
	MinOverlap:        20,
	SimThreshold:      0.85,
	MaxScanLength:     1000,
	TrimWindow:        50,
	TrimMaxNFrac:      0.3,
	MinImpliedOverlap: 10,
	PosToleranceFloor: 50,
	PosToleranceFrac:  0.3,
}

// sanitize replaces out-of-range parameters with their defaults. Bad
// parameters are logged, never fatal: an interactive caller is better served
// by a run under default settings than by an aborted one.
func (o Opts) sanitize() Opts {
	if o.MinOverlap <= 0 {
		log.Error.Printf("assembly: min overlap %d out of range, using default %d",
			o.MinOverlap, DefaultOpts.MinOverlap)
		o.MinOverlap = DefaultOpts.MinOverlap
	}
	if math.IsNaN(o.SimThreshold) || math.IsInf(o.SimThreshold, 0) ||
		o.SimThreshold <= 0 || o.SimThreshold > 1 {
		log.Error.Printf("assembly: similarity threshold %v out of range (0,1], using default %v",
			o.SimThreshold, DefaultOpts.SimThreshold)
		o.SimThreshold = DefaultOpts.SimThreshold
	}
	if o.MaxScanLength <= 0 {
		o.MaxScanLength = DefaultOpts.MaxScanLength
	}
	if o.TrimWindow <= 0 {
		o.TrimWindow = DefaultOpts.TrimWindow
	}
	if math.IsNaN(o.TrimMaxNFrac) || o.TrimMaxNFrac <= 0 || o.TrimMaxNFrac > 1 {
		o.TrimMaxNFrac = DefaultOpts.TrimMaxNFrac
	}
	if o.MinImpliedOverlap <= 0 {
		o.MinImpliedOverlap = DefaultOpts.MinImpliedOverlap
	}
	if o.PosToleranceFloor <= 0 {
		o.PosToleranceFloor = DefaultOpts.PosToleranceFloor
	}
	if math.IsNaN(o.PosToleranceFrac) || o.PosToleranceFrac <= 0 {
		o.PosToleranceFrac = DefaultOpts.PosToleranceFrac
	}
	return o
}
