package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/seekchart/chart"
)

// sampleReader parses x,y rows from a CSV trace one at a time. Columns past
// the second are ignored.
type sampleReader struct {
	csv     *csv.Reader
	row     int
	skipped int
}

func newSampleReader(r io.Reader) *sampleReader {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	return &sampleReader{csv: csvReader}
}

// Next returns the next well-formed sample. A first row that does not parse
// is taken as a header; later malformed rows are logged and skipped. It
// returns io.EOF at the end of the input.
func (s *sampleReader) Next() (chart.Sample, error) {
	for {
		rec, err := s.csv.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				s.row++
				s.skipped++
				log.Printf("skipping malformed trace row: %v", err)
				continue
			}
			return chart.Sample{}, err
		}
		s.row++
		sample, err := parseRecord(rec)
		if err != nil {
			if s.row == 1 {
				// Header.
				continue
			}
			s.skipped++
			log.Printf("skipping trace row %d: %v", s.row, err)
			continue
		}
		return sample, nil
	}
}

func parseRecord(rec []string) (chart.Sample, error) {
	if len(rec) < 2 {
		return chart.Sample{}, fmt.Errorf("expected at least 2 columns, got %d", len(rec))
	}
	x, err := parseValue(rec[0])
	if err != nil {
		return chart.Sample{}, fmt.Errorf("failed parsing x: %w", err)
	}
	y, err := parseValue(rec[1])
	if err != nil {
		return chart.Sample{}, fmt.Errorf("failed parsing y: %w", err)
	}
	return chart.Sample{X: x, Y: y}, nil
}

func parseValue(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", field)
	}
	return v, nil
}

// ReadSamples reads a whole x,y CSV trace. An optional header row and
// malformed rows are skipped; skipped counts the malformed rows.
func ReadSamples(r io.Reader) (samples []chart.Sample, skipped int, err error) {
	sr := newSampleReader(r)
	for {
		sample, err := sr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return samples, sr.skipped, nil
			}
			return samples, sr.skipped, fmt.Errorf("failed reading trace: %w", err)
		}
		samples = append(samples, sample)
	}
}
