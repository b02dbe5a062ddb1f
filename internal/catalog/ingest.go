// =============================================================================
// DATANORM-AZ Processor - Ingestor
// =============================================================================
//
// The ingestor drives a line-by-line scan of a DATANORM source, feeds each
// line to the record decoder and applies the result to the catalog store.
// The scan is strictly sequential because later records overwrite earlier
// ones (last write wins), and it streams: memory per line is constant, which
// is what keeps files of up to ~2,000,000 lines tractable.
//
// A malformed line is a local, recoverable condition. It is counted, logged
// at debug level and skipped; it never aborts the scan. Only stream-level
// failures (unreadable file, oversized line) surface as errors.
//
// =============================================================================

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/akress/datanorm-az/internal/decoder"
	"github.com/akress/datanorm-az/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

// maxLineBytes bounds a single record line. DATANORM records are short;
// anything near this size is a corrupt file, not a record.
const maxLineBytes = 1 << 20

// Report summarizes one ingestion run.
type Report struct {
	// RunID tags all log entries of this ingestion run.
	RunID uuid.UUID

	// LinesRead is the number of non-empty lines scanned.
	LinesRead int

	// SkippedLines counts malformed or unrecognized lines. A non-zero
	// count is reporting data for the caller, not an error.
	SkippedLines int

	// Articles and PriceSteps are the stored record counts after the run.
	Articles   int
	PriceSteps int

	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration
}

// Ingestor builds a catalog store from a record stream.
type Ingestor struct {
	dec *decoder.Decoder
	log zerolog.Logger
}

// NewIngestor creates an ingestor around the given decoder.
func NewIngestor(dec *decoder.Decoder, log zerolog.Logger) *Ingestor {
	return &Ingestor{dec: dec, log: log}
}

// IngestFile opens the file, wraps it in a character-set decoder for the
// given encoding and ingests it. See Ingest for the scan semantics.
func (i *Ingestor) IngestFile(path, encoding string) (*Store, Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	reader, err := decodeReader(file, encoding)
	if err != nil {
		return nil, Report{}, err
	}
	return i.Ingest(reader)
}

// Ingest scans the stream line by line into a fresh store and returns the
// finished store together with the run report. The store must be treated
// as read-only once Ingest returns.
func (i *Ingestor) Ingest(r io.Reader) (*Store, Report, error) {
	report := Report{RunID: uuid.New()}
	store := NewStore()
	started := time.Now()

	log := i.log.With().Stringer("run_id", report.RunID).Logger()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		report.LinesRead++

		record, err := i.dec.Decode(line)
		if err != nil {
			if !errors.Is(err, decoder.ErrMalformed) {
				return nil, report, fmt.Errorf("line %d: %w", lineNo, err)
			}
			report.SkippedLines++
			log.Debug().Int("line", lineNo).Err(err).Msg("skipping line")
			continue
		}

		switch record.Type {
		case types.RecordArticle:
			store.UpsertArticle(*record.Article)
		case types.RecordPriceStep:
			store.UpsertPriceStep(*record.PriceStep)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, report, fmt.Errorf("failed to scan source: %w", err)
	}

	report.Articles = store.ArticleCount()
	report.PriceSteps = store.StepCount()
	report.Elapsed = time.Since(started)

	log.Info().
		Int("lines", report.LinesRead).
		Int("skipped", report.SkippedLines).
		Int("articles", report.Articles).
		Int("price_steps", report.PriceSteps).
		Dur("elapsed", report.Elapsed).
		Msg("ingestion complete")

	return store, report, nil
}

// decodeReader wraps the raw reader with a character-set decoder. DATANORM
// files are conventionally Latin-1; UTF-8 input passes through untouched.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch normalizeEncoding(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("unsupported input encoding %q", encoding)
	}
}

func normalizeEncoding(encoding string) string {
	return strings.ToLower(strings.TrimSpace(encoding))
}
