package domain

import (
	"fmt"
	"strings"
	"time"
)

// EvaluationStatus is the assessed compliance status of one requirement.
type EvaluationStatus string

const (
	StatusCompliant    EvaluationStatus = "COMPLIANT"
	StatusPartial      EvaluationStatus = "PARTIAL"
	StatusNonCompliant EvaluationStatus = "NON_COMPLIANT"
)

// Valid reports whether the status is one of the known values.
func (s EvaluationStatus) Valid() bool {
	switch s {
	case StatusCompliant, StatusPartial, StatusNonCompliant:
		return true
	}
	return false
}

// Label returns the status with underscores replaced by spaces.
func (s EvaluationStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Evaluation is one requirement's assessed status against a target document.
type Evaluation struct {
	Requirement string
	Status      EvaluationStatus
	Rationale   string

	// Evidence may be empty.
	Evidence []string
}

// ComparisonSummary tallies evaluations by status.
type ComparisonSummary struct {
	Compliant    int
	Partial      int
	NonCompliant int
}

// Total returns the number of tallied evaluations.
func (s ComparisonSummary) Total() int {
	return s.Compliant + s.Partial + s.NonCompliant
}

// Chips returns the summary labels in display order.
func (s ComparisonSummary) Chips() []string {
	return []string{
		fmt.Sprintf("Compliant: %d", s.Compliant),
		fmt.Sprintf("Partial: %d", s.Partial),
		fmt.Sprintf("Non-compliant: %d", s.NonCompliant),
	}
}

// ComparisonResult is the outcome of evaluating a source document
// against a target document's requirements. Documents are referenced
// by ID only.
type ComparisonResult struct {
	ID               string
	SourceDocumentID string
	TargetDocumentID string

	// ComplianceScore is in [0, 1].
	ComplianceScore float64

	Summary     ComparisonSummary
	Evaluations []Evaluation
	CreatedAt   time.Time
}

// TallyEvaluations counts evaluations by status.
func TallyEvaluations(evals []Evaluation) ComparisonSummary {
	var s ComparisonSummary
	for i := range evals {
		switch evals[i].Status {
		case StatusCompliant:
			s.Compliant++
		case StatusPartial:
			s.Partial++
		case StatusNonCompliant:
			s.NonCompliant++
		}
	}
	return s
}

// Validate checks the result's invariants: known statuses, a score in
// [0, 1], non-negative counts, and counts that add up to the number
// of evaluations.
func (r *ComparisonResult) Validate() error {
	if r.SourceDocumentID == "" || r.TargetDocumentID == "" {
		return fmt.Errorf("%w: comparison is missing document ids", ErrInvalidInput)
	}
	if r.ComplianceScore < 0 || r.ComplianceScore > 1 {
		return fmt.Errorf("%w: compliance score %v outside [0,1]", ErrInvalidInput, r.ComplianceScore)
	}
	if r.Summary.Compliant < 0 || r.Summary.Partial < 0 || r.Summary.NonCompliant < 0 {
		return fmt.Errorf("%w: negative summary count", ErrInvalidInput)
	}
	for i := range r.Evaluations {
		if !r.Evaluations[i].Status.Valid() {
			return fmt.Errorf("%w: unknown evaluation status %q", ErrInvalidInput, r.Evaluations[i].Status)
		}
	}
	if r.Summary.Total() != len(r.Evaluations) {
		return fmt.Errorf("%w: summary counts %d evaluations, got %d",
			ErrInvalidInput, r.Summary.Total(), len(r.Evaluations))
	}
	if r.Summary != TallyEvaluations(r.Evaluations) {
		return fmt.Errorf("%w: summary does not match evaluation statuses", ErrInvalidInput)
	}
	return nil
}

// ScorePercent returns the compliance score as a percentage.
func (r *ComparisonResult) ScorePercent() float64 {
	return r.ComplianceScore * 100
}

// ScoreLabel renders the score as a whole percentage.
func (r *ComparisonResult) ScoreLabel() string {
	return fmt.Sprintf("%.0f%% compliant", r.ScorePercent())
}

// Clone returns a deep copy of the result.
func (r ComparisonResult) Clone() ComparisonResult {
	evals := make([]Evaluation, len(r.Evaluations))
	for i, e := range r.Evaluations {
		e.Evidence = append([]string(nil), e.Evidence...)
		evals[i] = e
	}
	r.Evaluations = evals
	return r
}
