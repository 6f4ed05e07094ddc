// Package fasta contains code for parsing sequence text files and writing
// FASTA output. FASTA files consist of a number of named sequences that may
// be interrupted by newlines. For example:
//
// >read1
// ACGTAC
// GAGGAC
// GCG
// >read2
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'. Any text appearing after a space is ignored.
// For example, '>read1 trimmed capillary trace' becomes 'read1'.
//
// The reader is deliberately tolerant of the formats Sanger capillary
// machines export: lines starting with ';' are treated as comments, and
// input with no header at all (.seq and .txt dumps) parses as a single
// unnamed record.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Record is one named sequence. Seq holds the raw sequence text as read;
// cleaning and alphabet enforcement are the caller's concern.
type Record struct {
	Name string
	Seq  string
}

// Read parses sequence data from r into an ordered list of records.
func Read(r io.Reader) ([]Record, error) {
	var (
		recs    []Record
		name    string
		started bool
		seq     strings.Builder
	)
	flush := func() {
		if !started {
			return
		}
		recs = append(recs, Record{Name: name, Seq: seq.String()})
		seq.Reset()
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			flush()
			name = strings.Split(line[1:], " ")[0]
			started = true
			continue
		}
		started = true
		seq.WriteString(line)
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read sequence data")
	}
	flush()
	if len(recs) == 0 {
		return nil, errors.Errorf("no sequence records found")
	}
	return recs, nil
}
