// Package scoring aggregates score records into per-student totals and
// ranks students by total.
//
// Every function here is pure: inputs are never modified and results are
// freshly allocated.
package scoring

import (
	"sort"

	"github.com/okian/tally/internal/domain/dedupe"
	"github.com/okian/tally/internal/domain/model"
)

// ComputeTotal sums Number over the records whose Name equals studentName
// exactly (case-sensitive). It returns 0 when no record matches.
func ComputeTotal(studentName string, records []model.ScoreRecord) int {
	total := 0
	for _, r := range records {
		if r.Name == studentName {
			total += r.Number
		}
	}
	return total
}

// UniqueNames returns the distinct names in order of first appearance.
func UniqueNames(records []model.ScoreRecord) []string {
	seen := dedupe.NewOrderedSet(dedupe.WithCapacityHint(len(records)))
	for _, r := range records {
		seen.SeenAndRecord(r.Name)
	}
	return seen.Values()
}

// Totals returns one StudentTotal per distinct name, in order of first
// appearance. Each total equals ComputeTotal for that name.
func Totals(records []model.ScoreRecord) []model.StudentTotal {
	names := UniqueNames(records)

	sums := make(map[string]int, len(names))
	for _, r := range records {
		sums[r.Name] += r.Number
	}

	out := make([]model.StudentTotal, len(names))
	for i, name := range names {
		out[i] = model.StudentTotal{Name: name, Total: sums[name]}
	}
	return out
}

// RankStudents orders students by total descending and assigns ranks 1..N.
// Equal totals keep their first-appearance order and still get distinct,
// consecutive ranks.
func RankStudents(records []model.ScoreRecord) []model.RankedTotal {
	totals := Totals(records)

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})

	ranked := make([]model.RankedTotal, len(totals))
	for i, t := range totals {
		ranked[i] = model.RankedTotal{Rank: i + 1, Name: t.Name, Total: t.Total}
	}
	return ranked
}
