package fasta

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// WrapColumns is the sequence line width used by Write.
const WrapColumns = 80

// Write emits one FASTA record with WrapColumns-character sequence lines.
func Write(w io.Writer, name, seq string) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, ">%s\n", name); err != nil {
		return errors.Wrap(err, "couldn't write FASTA header")
	}
	for start := 0; start < len(seq); start += WrapColumns {
		end := start + WrapColumns
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := fmt.Fprintf(bw, "%s\n", seq[start:end]); err != nil {
			return errors.Wrap(err, "couldn't write FASTA sequence")
		}
	}
	return errors.Wrap(bw.Flush(), "couldn't flush FASTA output")
}

// AssemblyName returns the export header used for assembled sequences, e.g.
// Enhanced_Assembly_1523bp_20260825_143000.
func AssemblyName(length int, ts time.Time) string {
	return fmt.Sprintf("Enhanced_Assembly_%dbp_%s", length, ts.Format("20060102_150405"))
}
