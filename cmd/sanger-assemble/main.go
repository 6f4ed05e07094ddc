package main

// sanger-assemble builds a consensus sequence from a set of Sanger capillary
// reads with user-declared approximate genomic positions.
//
// The input manifest is a tab-separated file with one read per line:
//
//    <path> <name> <strand> <position>
//
// path may point to a .seq, .fasta, .fa or .txt file, optionally gzipped.
// strand is forward, reverse or unknown. position is the 1-based coordinate
// of the read's 5' end (forward) or 3' end (reverse) on the reference axis.
//
// Example:
//
//    sanger-assemble -manifest reads.tsv -output assembly.fa -report report.txt

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/sanger/assembly"
	"github.com/grailbio/sanger/encoding/fasta"
	"github.com/klauspost/compress/gzip"
)

// Collection of options set via cmdline flags.
type assembleFlags struct {
	manifestPath string
	outputPath   string
	reportPath   string
	start, end   int
}

type manifestEntry struct {
	path   string
	name   string
	strand assembly.Strand
	pos    int
}

// parseManifest reads the read manifest. Fields are tab-separated; lines that
// don't contain a tab are split on arbitrary whitespace instead. Blank lines
// and lines starting with '#' are skipped.
func parseManifest(r io.Reader) ([]manifestEntry, error) {
	var entries []manifestEntry
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			fields = strings.Fields(line)
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("manifest line %d: want <path> <name> <strand> <position>, got %q", lineno, line)
		}
		strand, err := assembly.ParseStrand(fields[2])
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: %v", lineno, err)
		}
		pos, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: bad position %q", lineno, fields[3])
		}
		entries = append(entries, manifestEntry{
			path:   strings.TrimSpace(fields[0]),
			name:   strings.TrimSpace(fields[1]),
			strand: strand,
			pos:    pos,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// readRawSequence slurps one sequence file, transparently decompressing
// gzipped input.
func readRawSequence(ctx context.Context, path string) (s string, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return "", err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return "", err
		}
	}
	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// displayName picks a name for a read: the manifest name if given, else the
// first FASTA header in the file, else the file basename.
func displayName(entry manifestEntry, raw string) string {
	if entry.name != "" && entry.name != "-" {
		return entry.name
	}
	if recs, err := fasta.Read(strings.NewReader(raw)); err == nil && recs[0].Name != "" {
		return recs[0].Name
	}
	base := filepath.Base(entry.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func loadReads(ctx context.Context, entries []manifestEntry, opts assembly.Opts) []assembly.Read {
	reads := make([]assembly.Read, 0, len(entries))
	for _, entry := range entries {
		raw, err := readRawSequence(ctx, entry.path)
		if err != nil {
			log.Fatalf("read %v: %v", entry.path, err)
		}
		r := assembly.NewRead(displayName(entry, raw), raw, entry.strand, entry.pos, opts)
		if len(r.Seq) == 0 {
			log.Error.Printf("%s: no usable bases after cleaning", entry.path)
		}
		reads = append(reads, r)
	}
	return reads
}

func writeAssemblyFASTA(ctx context.Context, path string, res *assembly.Result) {
	out, err := file.Create(ctx, path)
	if err != nil {
		log.Fatalf("create %v: %v", path, err)
	}
	er := errors.Once{}
	er.Set(fasta.Write(out.Writer(ctx), fasta.AssemblyName(len(res.Seq), time.Now()), res.Seq))
	er.Set(out.Close(ctx))
	if er.Err() != nil {
		log.Fatalf("write %v: %v", path, er.Err())
	}
	log.Printf("Wrote %d bases to %s", len(res.Seq), path)
}

func writeReport(ctx context.Context, path string, res *assembly.Result) {
	out, err := file.Create(ctx, path)
	if err != nil {
		log.Fatalf("create %v: %v", path, err)
	}
	w := bufio.NewWriter(out.Writer(ctx))
	er := errors.Once{}
	p := func(format string, args ...interface{}) {
		_, err := fmt.Fprintf(w, format, args...)
		er.Set(err)
	}
	p("bounds\t%d\t%d\n", res.Bounds.Start, res.Bounds.End)
	p("length\t%d\n", len(res.Seq))
	p("real_bases\t%d\n", res.RealBases)
	p("gap_bases\t%d\n", res.GapBases)
	p("coverage_pct\t%.2f\n", res.Coverage)
	if res.SpanMismatch {
		p("warning\tassembled length disagrees with declared span\n")
	}
	for _, o := range res.Overlaps {
		p("overlap\t%s\t%s\t%s\t%d\t%.3f\t%d\t%d\n",
			o.SourceName, o.TargetName, o.Kind, o.Length, o.Similarity,
			o.Genomic.Start, o.Genomic.End)
	}
	er.Set(w.Flush())
	er.Set(out.Close(ctx))
	if er.Err() != nil {
		log.Fatalf("write %v: %v", path, er.Err())
	}
	log.Printf("Wrote report to %s", path)
}

func main() {
	opts := assembly.DefaultOpts
	flags := assembleFlags{}
	flag.StringVar(&flags.manifestPath, "manifest", "", "TSV manifest of reads: <path> <name> <strand> <position>.")
	flag.StringVar(&flags.outputPath, "output", "./assembly.fa", "FASTA file for the assembled sequence.")
	flag.StringVar(&flags.reportPath, "report", "", "Optional text report with assembly statistics and overlaps.")
	flag.IntVar(&flags.start, "start", 0, "Optional explicit assembly start coordinate. 0 derives bounds from the manifest.")
	flag.IntVar(&flags.end, "end", 0, "Optional explicit assembly end coordinate. 0 derives bounds from the manifest.")
	flag.IntVar(&opts.MinOverlap, "min-overlap", assembly.DefaultOpts.MinOverlap,
		"Minimum overlap length considered during overlap detection.")
	flag.Float64Var(&opts.SimThreshold, "similarity", assembly.DefaultOpts.SimThreshold,
		"Minimum mean per-base similarity, in (0,1], for an overlap to be kept.")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flags.manifestPath == "" {
		log.Fatalf("-manifest is required")
	}
	if (flags.start == 0) != (flags.end == 0) {
		log.Fatalf("-start and -end must be given together")
	}
	if flags.start != 0 {
		if flags.start > flags.end {
			log.Fatalf("-start %d exceeds -end %d", flags.start, flags.end)
		}
		opts.Bounds = &assembly.Span{Start: flags.start, End: flags.end}
	}

	manifest, err := file.ReadFile(ctx, flags.manifestPath)
	if err != nil {
		log.Fatalf("read %v: %v", flags.manifestPath, err)
	}
	entries, err := parseManifest(strings.NewReader(string(manifest)))
	if err != nil {
		log.Fatalf("%v: %v", flags.manifestPath, err)
	}
	if len(entries) == 0 {
		log.Fatalf("%v: no reads listed", flags.manifestPath)
	}

	reads := loadReads(ctx, entries, opts)
	res, err := assembly.Run(reads, opts)
	if err != nil {
		log.Fatalf("assembly failed: %v", err)
	}
	log.Printf("Assembled %d-%d: %d bases, %.2f%% coverage, %d overlaps",
		res.Bounds.Start, res.Bounds.End, res.RealBases, res.Coverage, len(res.Overlaps))
	log.Printf("Stats: %+v", res.Stats)

	writeAssemblyFASTA(ctx, flags.outputPath, res)
	if flags.reportPath != "" {
		writeReport(ctx, flags.reportPath, res)
	}
	log.Printf("All done")
}
