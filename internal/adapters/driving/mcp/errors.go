// Package mcp provides an MCP (Model Context Protocol) server adapter for MineGuard.
// It lets AI assistants list documents, read their analysis, run compliance
// comparisons and ask grounded questions through the MineGuard API.
package mcp

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")
