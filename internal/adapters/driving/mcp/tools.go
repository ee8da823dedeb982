package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single document.
type DocumentOutput struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Filename  string   `json:"filename,omitempty"`
	Size      string   `json:"size"`
	CreatedAt string   `json:"created_at,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// DocumentInput identifies one document.
type DocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the id of the document"`
}

// CompareInput is the input schema for the compare_documents tool.
type CompareInput struct {
	SourceID string `json:"source_id" jsonschema:"the document being evaluated"`
	TargetID string `json:"target_id" jsonschema:"the reference document whose requirements are checked"`
}

// CompareOutput is the output schema for the compare_documents tool.
type CompareOutput struct {
	ID              string             `json:"id"`
	ComplianceScore float64            `json:"compliance_score"`
	Score           string             `json:"score"`
	Compliant       int                `json:"compliant"`
	Partial         int                `json:"partial"`
	NonCompliant    int                `json:"non_compliant"`
	Evaluations     []EvaluationOutput `json:"evaluations"`
}

// EvaluationOutput represents one requirement's status.
type EvaluationOutput struct {
	Requirement string   `json:"requirement"`
	Status      string   `json:"status"`
	Rationale   string   `json:"rationale,omitempty"`
	Evidence    []string `json:"evidence,omitempty"`
}

// AskInput is the input schema for the ask_question tool.
type AskInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document the question is about"`
	Question   string `json:"question" jsonschema:"the question to answer from the document"`
}

// AskOutput is the output schema for the ask_question tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// HistoryOutput is the output schema for the chat_history tool.
type HistoryOutput struct {
	Turns []TurnOutput `json:"turns"`
}

// TurnOutput is one question and its answer.
type TurnOutput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents uploaded to MineGuard",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get a document with its summary and key points",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_documents",
		Description: "Evaluate a document's compliance with the requirements of a reference document",
	}, s.handleCompare)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a question answered from a document's content",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "chat_history",
		Description: "Get the stored questions and answers for a document",
	}, s.handleHistory)
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Documents.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = toDocumentOutput(&docs[i], false)
	}
	return nil, output, nil
}

func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	doc, err := s.ports.Documents.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, toDocumentOutput(doc, true), nil
}

func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, CompareOutput, error) {
	if s.ports.Comparisons == nil {
		return nil, CompareOutput{}, domain.ErrNotImplemented
	}
	result, err := s.ports.Comparisons.Compare(ctx, input.SourceID, input.TargetID)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	output := CompareOutput{
		ID:              result.ID,
		ComplianceScore: result.ComplianceScore,
		Score:           result.ScoreLabel(),
		Compliant:       result.Summary.Compliant,
		Partial:         result.Summary.Partial,
		NonCompliant:    result.Summary.NonCompliant,
		Evaluations:     make([]EvaluationOutput, len(result.Evaluations)),
	}
	for i, e := range result.Evaluations {
		output.Evaluations[i] = EvaluationOutput{
			Requirement: e.Requirement,
			Status:      e.Status.Label(),
			Rationale:   e.Rationale,
			Evidence:    e.Evidence,
		}
	}
	return nil, output, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.QA == nil {
		return nil, AskOutput{}, domain.ErrNotImplemented
	}
	answer, err := s.ports.QA.Ask(ctx, input.DocumentID, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if s.ports.QA == nil {
		return nil, HistoryOutput{}, domain.ErrNotImplemented
	}
	turns, err := s.ports.QA.History(ctx, input.DocumentID)
	if err != nil {
		return nil, HistoryOutput{}, err
	}
	output := HistoryOutput{Turns: make([]TurnOutput, len(turns))}
	for i, t := range turns {
		output.Turns[i] = TurnOutput{Question: t.Question, Answer: t.Answer}
	}
	return nil, output, nil
}

func toDocumentOutput(doc *domain.Document, withAnalysis bool) DocumentOutput {
	out := DocumentOutput{
		ID:       doc.ID,
		Title:    doc.DisplayTitle(),
		Filename: doc.Filename,
		Size:     doc.SizeLabel(),
	}
	if !doc.CreatedAt.IsZero() {
		out.CreatedAt = doc.CreatedAt.Format(time.RFC3339)
	}
	if withAnalysis {
		out.Summary = doc.Summary()
		out.KeyPoints = doc.KeyPoints()
	}
	return out
}
