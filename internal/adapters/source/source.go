// Package source loads score records from the places a run can take them
// from: the built-in sample, a YAML/JSON file, or a reader such as stdin.
package source

import (
	"context"
	"fmt"

	"github.com/okian/tally/internal/domain/model"
)

// Source provides the record list for one run.
type Source interface {
	// Records returns the full record list. Implementations honor ctx
	// before doing any I/O.
	Records(ctx context.Context) ([]model.ScoreRecord, error)

	// Name identifies the source in logs and metrics.
	Name() string
}

// Static serves a fixed, in-memory record list.
type Static struct {
	name    string
	records []model.ScoreRecord
}

// NewStatic wraps records. The slice is copied.
func NewStatic(records []model.ScoreRecord) *Static {
	return &Static{name: "static", records: clone(records)}
}

// Sample returns the built-in demo data set: three students, four subjects.
func Sample() *Static {
	return &Static{name: "sample", records: []model.ScoreRecord{
		{Name: "Hasan", Subject: model.SubjectJenkins, Number: 45},
		{Name: "Habib", Subject: model.SubjectJenkins, Number: 56},
		{Name: "Hasan", Subject: model.SubjectAWS, Number: 97},
		{Name: "Habib", Subject: model.SubjectAWS, Number: 43},
		{Name: "Hasan", Subject: model.SubjectLinux, Number: 76},
		{Name: "Habib", Subject: model.SubjectLinux, Number: 88},
		{Name: "Hasan", Subject: model.SubjectKubernetes, Number: 65},
		{Name: "Habib", Subject: model.SubjectKubernetes, Number: 70},
		{Name: "Ayesha", Subject: model.SubjectJenkins, Number: 90},
		{Name: "Ayesha", Subject: model.SubjectAWS, Number: 80},
		{Name: "Ayesha", Subject: model.SubjectLinux, Number: 85},
		{Name: "Ayesha", Subject: model.SubjectKubernetes, Number: 78},
	}}
}

// Records returns a copy of the wrapped list.
func (s *Static) Records(ctx context.Context) ([]model.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return clone(s.records), nil
}

// Name implements Source.
func (s *Static) Name() string { return s.name }

func clone(records []model.ScoreRecord) []model.ScoreRecord {
	out := make([]model.ScoreRecord, len(records))
	copy(out, records)
	return out
}
