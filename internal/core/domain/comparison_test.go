package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResult(score float64, statuses ...EvaluationStatus) ComparisonResult {
	evals := make([]Evaluation, len(statuses))
	for i, s := range statuses {
		evals[i] = Evaluation{Requirement: "req", Status: s}
	}
	return ComparisonResult{
		ID:               "cmp-1",
		SourceDocumentID: "a",
		TargetDocumentID: "b",
		ComplianceScore:  score,
		Summary:          TallyEvaluations(evals),
		Evaluations:      evals,
	}
}

func TestEvaluationStatus_Label(t *testing.T) {
	assert.Equal(t, "COMPLIANT", StatusCompliant.Label())
	assert.Equal(t, "PARTIAL", StatusPartial.Label())
	assert.Equal(t, "NON COMPLIANT", StatusNonCompliant.Label())
}

func TestEvaluationStatus_Valid(t *testing.T) {
	assert.True(t, StatusCompliant.Valid())
	assert.True(t, StatusPartial.Valid())
	assert.True(t, StatusNonCompliant.Valid())
	assert.False(t, EvaluationStatus("UNKNOWN").Valid())
	assert.False(t, EvaluationStatus("").Valid())
}

func TestTallyEvaluations(t *testing.T) {
	r := newResult(0.625, StatusCompliant, StatusCompliant, StatusPartial, StatusNonCompliant)

	assert.Equal(t, ComparisonSummary{Compliant: 2, Partial: 1, NonCompliant: 1}, r.Summary)
	assert.Equal(t, len(r.Evaluations), r.Summary.Total())
}

func TestComparisonResult_Validate(t *testing.T) {
	r := newResult(0.625, StatusCompliant, StatusCompliant, StatusPartial, StatusNonCompliant)
	require.NoError(t, r.Validate())

	empty := newResult(0)
	require.NoError(t, empty.Validate())

	full := newResult(1, StatusCompliant)
	require.NoError(t, full.Validate())
}

func TestComparisonResult_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *ComparisonResult)
	}{
		{"score above one", func(r *ComparisonResult) { r.ComplianceScore = 1.2 }},
		{"negative score", func(r *ComparisonResult) { r.ComplianceScore = -0.1 }},
		{"count mismatch", func(r *ComparisonResult) { r.Summary.Compliant++ }},
		{"negative count", func(r *ComparisonResult) {
			r.Summary.Compliant = -1
			r.Summary.Partial += 3
		}},
		{"status swap", func(r *ComparisonResult) {
			r.Summary.Compliant--
			r.Summary.Partial++
		}},
		{"unknown status", func(r *ComparisonResult) { r.Evaluations[0].Status = "MAYBE" }},
		{"missing source", func(r *ComparisonResult) { r.SourceDocumentID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResult(0.5, StatusCompliant, StatusCompliant, StatusPartial)
			tt.mutate(&r)
			err := r.Validate()
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestComparisonResult_ScoreAndChips(t *testing.T) {
	r := newResult(0.625, StatusCompliant, StatusCompliant, StatusPartial, StatusNonCompliant)

	assert.InDelta(t, 62.5, r.ScorePercent(), 1e-9)
	assert.Contains(t, []string{"62% compliant", "63% compliant"}, r.ScoreLabel())
	assert.Equal(t, []string{"Compliant: 2", "Partial: 1", "Non-compliant: 1"}, r.Summary.Chips())
}

func TestComparisonResult_Clone(t *testing.T) {
	r := newResult(0.5, StatusCompliant)
	r.Evaluations[0].Evidence = []string{"clause 4"}

	clone := r.Clone()
	clone.Evaluations[0].Evidence[0] = "changed"
	clone.Evaluations[0].Requirement = "changed"

	assert.Equal(t, "clause 4", r.Evaluations[0].Evidence[0])
	assert.Equal(t, "req", r.Evaluations[0].Requirement)
}
