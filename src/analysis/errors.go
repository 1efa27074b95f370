package analysis

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero marks a speedup ratio whose Strassen time is zero.
var ErrDivisionByZero = errors.New("division by zero")

// DataLoadError reports an input table that is absent, unreadable or malformed.
// Line and Column are zero/empty when the failure is not tied to a cell.
type DataLoadError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("load %s: line %d column %s: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// AlignmentError reports standard and Strassen tables that do not line up row by row.
// Index is -1 when only the lengths differ.
type AlignmentError struct {
	StandardLen  int
	StrassenLen  int
	Index        int
	StandardSize int
	StrassenSize int
}

func (e *AlignmentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("series not aligned: standard has %d rows, strassen has %d", e.StandardLen, e.StrassenLen)
	}
	return fmt.Sprintf("series not aligned at row %d: standard size=%d strassen size=%d", e.Index, e.StandardSize, e.StrassenSize)
}

// DerivationError reports a numeric anomaly found while deriving a view.
type DerivationError struct {
	View  string
	Index int
	Size  int
	Err   error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive %s: row %d (size=%d): %v", e.View, e.Index, e.Size, e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }
