// Package report renders student totals to an output stream.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/tally/internal/domain/model"
)

// Format selects how totals are rendered.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{FormatText, FormatJSON} }

// ParseFormat maps s to a supported Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Writer renders totals in a fixed format.
type Writer struct {
	w      io.Writer
	format Format
}

// New returns a Writer for w. format must be one of Formats.
func New(w io.Writer, format Format) (*Writer, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	return &Writer{w: w, format: format}, nil
}

// Ranked writes one line per student in the given order:
//
//	Total Score of Ayesha: 333 (1)
func (r *Writer) Ranked(ranked []model.RankedTotal) error {
	if r.format == FormatJSON {
		return r.json(ranked)
	}
	for _, rt := range ranked {
		if _, err := fmt.Fprintf(r.w, "Total Score of %s: %d (%d)\n", rt.Name, rt.Total, rt.Rank); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	return nil
}

// Totals writes unranked totals in the given order.
func (r *Writer) Totals(totals []model.StudentTotal) error {
	if r.format == FormatJSON {
		return r.json(totals)
	}
	for _, t := range totals {
		if err := r.line(t); err != nil {
			return err
		}
	}
	return nil
}

// Total writes a single student's total.
func (r *Writer) Total(t model.StudentTotal) error {
	if r.format == FormatJSON {
		return r.json(t)
	}
	return r.line(t)
}

func (r *Writer) line(t model.StudentTotal) error {
	if _, err := fmt.Fprintf(r.w, "Total Score of %s: %d\n", t.Name, t.Total); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (r *Writer) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
