package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// decodeJSON unmarshals body into v and runs its validation.
func decodeJSON[T interface{ validate() error }](body []byte, what string) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedResponse, what, err)
	}
	if err := v.validate(); err != nil {
		return v, fmt.Errorf("%w: %s: %v", domain.ErrMalformedResponse, what, err)
	}
	return v, nil
}

type analysisDTO struct {
	Summary    string    `json:"summary"`
	KeyPoints  []string  `json:"keyPoints"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

type documentDTO struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"ownerId"`
	Title     string       `json:"title"`
	Filename  string       `json:"filename"`
	Size      int64        `json:"size"`
	RawText   string       `json:"rawText"`
	Analysis  *analysisDTO `json:"analysis,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (d documentDTO) validate() error {
	if d.ID == "" {
		return fmt.Errorf("document without id")
	}
	if d.Size < 0 {
		return fmt.Errorf("document %s has negative size", d.ID)
	}
	return nil
}

func (d documentDTO) toDomain() domain.Document {
	doc := domain.Document{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Filename:  d.Filename,
		Size:      d.Size,
		RawText:   d.RawText,
		CreatedAt: d.CreatedAt,
	}
	if d.Analysis != nil {
		doc.Analysis = &domain.Analysis{
			Summary:    d.Analysis.Summary,
			KeyPoints:  append([]string(nil), d.Analysis.KeyPoints...),
			AnalyzedAt: d.Analysis.AnalyzedAt,
		}
	}
	return doc
}

type documentListDTO []documentDTO

func (l documentListDTO) validate() error {
	for i := range l {
		if err := l[i].validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

type evaluationDTO struct {
	Requirement string   `json:"requirement"`
	Status      string   `json:"status"`
	Rationale   string   `json:"rationale"`
	Evidence    []string `json:"evidence"`
}

type comparisonDTO struct {
	ID               string  `json:"id"`
	SourceDocumentID string  `json:"sourceDocumentId"`
	TargetDocumentID string  `json:"targetDocumentId"`
	ComplianceScore  float64 `json:"complianceScore"`
	Summary          struct {
		Compliant    int `json:"compliant"`
		Partial      int `json:"partial"`
		NonCompliant int `json:"nonCompliant"`
	} `json:"summary"`
	Evaluations []evaluationDTO `json:"evaluations"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (c comparisonDTO) validate() error {
	r := c.toDomain()
	return r.Validate()
}

func (c comparisonDTO) toDomain() domain.ComparisonResult {
	evals := make([]domain.Evaluation, len(c.Evaluations))
	for i, e := range c.Evaluations {
		evals[i] = domain.Evaluation{
			Requirement: e.Requirement,
			Status:      domain.EvaluationStatus(e.Status),
			Rationale:   e.Rationale,
			Evidence:    append([]string(nil), e.Evidence...),
		}
	}
	return domain.ComparisonResult{
		ID:               c.ID,
		SourceDocumentID: c.SourceDocumentID,
		TargetDocumentID: c.TargetDocumentID,
		ComplianceScore:  c.ComplianceScore,
		Summary: domain.ComparisonSummary{
			Compliant:    c.Summary.Compliant,
			Partial:      c.Summary.Partial,
			NonCompliant: c.Summary.NonCompliant,
		},
		Evaluations: evals,
		CreatedAt:   c.CreatedAt,
	}
}

type compareRequestDTO struct {
	SourceDocumentID string `json:"sourceDocumentId"`
	TargetDocumentID string `json:"targetDocumentId"`
}

type chatTurnDTO struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

type chatHistoryDTO []chatTurnDTO

func (h chatHistoryDTO) validate() error {
	for i := range h {
		if h[i].Question == nil || h[i].Answer == nil {
			return fmt.Errorf("turn %d is missing question or answer", i)
		}
	}
	return nil
}

func (h chatHistoryDTO) toDomain() []domain.ChatTurn {
	turns := make([]domain.ChatTurn, len(h))
	for i := range h {
		turns[i] = domain.ChatTurn{Question: *h[i].Question, Answer: *h[i].Answer}
	}
	return turns
}

type askRequestDTO struct {
	Question string `json:"question"`
}

type answerDTO struct {
	Answer *string `json:"answer"`
}

func (a answerDTO) validate() error {
	if a.Answer == nil {
		return fmt.Errorf("missing answer")
	}
	return nil
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponseDTO struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// userLabel accepts the user either as a plain string or as an object.
func (l loginResponseDTO) userLabel() string {
	var s string
	if json.Unmarshal(l.User, &s) == nil {
		return s
	}
	var o struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if json.Unmarshal(l.User, &o) == nil {
		if o.Email != "" {
			return o.Email
		}
		return o.Name
	}
	return ""
}

func (l loginResponseDTO) validate() error {
	if l.Token == "" {
		return fmt.Errorf("missing token")
	}
	return nil
}
