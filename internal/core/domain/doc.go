// Package domain defines the core business entities for MineGuard.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded file plus its optional AI-derived analysis
//   - ComparisonResult: A compliance evaluation of one document against another
//   - ChatTurn: One question/answer pair in a document-grounded conversation
//   - UploadFile: A pending local file in an upload batch
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
