// Package analysis loads standard/Strassen benchmark tables and derives the comparison metrics plotted by the views.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Sqizeeeeee/sem11/src/logging"
	"github.com/Sqizeeeeee/sem11/src/types"
)

// Required column names.
const (
	ColumnSize   = "size"
	ColumnTimeMs = "time_ms"
)

// LoadPair reads the standard and Strassen tables. The first failure is returned; there is no partial result.
func LoadPair(standardPath, strassenPath string) (types.Pair, error) {
	std, err := LoadSeries(standardPath, types.StandardName)
	if err != nil {
		return types.Pair{}, err
	}
	str, err := LoadSeries(strassenPath, types.StrassenName)
	if err != nil {
		return types.Pair{}, err
	}
	return types.Pair{Standard: std, Strassen: str}, nil
}

// LoadSeries reads one CSV table with at least the columns size and time_ms.
func LoadSeries(path, name string) (types.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Series{}, &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()
	logging.Debugf("[analysis] reading %s series from %s", name, path)
	return ParseSeries(f, path, name)
}

// ParseSeries parses CSV content; path only labels errors.
// Columns are found by header name (trimmed, case-insensitive) and other columns are ignored.
func ParseSeries(r io.Reader, path, name string) (types.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return types.Series{}, &DataLoadError{Path: path, Err: errors.New("empty file")}
	}
	if err != nil {
		return types.Series{}, &DataLoadError{Path: path, Line: csvLine(err, 1), Err: err}
	}
	sizeCol, timeCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case ColumnSize:
			sizeCol = i
		case ColumnTimeMs:
			timeCol = i
		}
	}
	if sizeCol < 0 {
		return types.Series{}, &DataLoadError{Path: path, Line: 1, Column: ColumnSize, Err: errors.New("missing required column")}
	}
	if timeCol < 0 {
		return types.Series{}, &DataLoadError{Path: path, Line: 1, Column: ColumnTimeMs, Err: errors.New("missing required column")}
	}

	s := types.Series{Name: name}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return types.Series{}, &DataLoadError{Path: path, Line: csvLine(err, 0), Err: err}
		}
		line, _ := cr.FieldPos(0)
		size, err := strconv.Atoi(strings.TrimSpace(rec[sizeCol]))
		if err != nil {
			return types.Series{}, &DataLoadError{Path: path, Line: line, Column: ColumnSize, Err: err}
		}
		if size <= 0 {
			return types.Series{}, &DataLoadError{Path: path, Line: line, Column: ColumnSize, Err: fmt.Errorf("size must be positive, got %d", size)}
		}
		ms, err := strconv.ParseFloat(strings.TrimSpace(rec[timeCol]), 64)
		if err != nil {
			return types.Series{}, &DataLoadError{Path: path, Line: line, Column: ColumnTimeMs, Err: err}
		}
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return types.Series{}, &DataLoadError{Path: path, Line: line, Column: ColumnTimeMs, Err: fmt.Errorf("time must be a non-negative finite number, got %v", ms)}
		}
		s.Points = append(s.Points, types.Observation{Size: size, TimeMs: ms})
	}
	if len(s.Points) == 0 {
		return types.Series{}, &DataLoadError{Path: path, Err: errors.New("no data rows")}
	}
	return s, nil
}

// csvLine prefers the line number carried by a csv.ParseError.
func csvLine(err error, fallback int) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) && pe.Line > 0 {
		return pe.Line
	}
	return fallback
}

// CheckAligned verifies both series have the same length and the same size at every index.
func CheckAligned(p types.Pair) error {
	if p.Standard.Len() != p.Strassen.Len() {
		return &AlignmentError{StandardLen: p.Standard.Len(), StrassenLen: p.Strassen.Len(), Index: -1}
	}
	for i := range p.Standard.Points {
		a, b := p.Standard.Points[i].Size, p.Strassen.Points[i].Size
		if a != b {
			return &AlignmentError{StandardLen: p.Standard.Len(), StrassenLen: p.Strassen.Len(), Index: i, StandardSize: a, StrassenSize: b}
		}
	}
	return nil
}
