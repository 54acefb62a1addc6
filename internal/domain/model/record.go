// Package model contains domain models passed between layers.
package model

// Subject is the course or tool a score was recorded for.
type Subject string

// Known subjects.
const (
	SubjectJenkins    Subject = "Jenkins"
	SubjectAWS        Subject = "AWS"
	SubjectLinux      Subject = "Linux"
	SubjectKubernetes Subject = "Kubernetes"
)

// KnownSubjects returns the default accepted subject set in declaration order.
func KnownSubjects() []Subject {
	return []Subject{SubjectJenkins, SubjectAWS, SubjectLinux, SubjectKubernetes}
}

// ScoreRecord is one (student, subject, score) observation.
type ScoreRecord struct {
	Name    string  `json:"name"`
	Subject Subject `json:"subject"`
	Number  int     `json:"number"`
}

// StudentTotal is a student's summed score across all subjects.
type StudentTotal struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// RankedTotal is a StudentTotal with its 1-based position in the ranking.
type RankedTotal struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}
