// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every response body is decoded into a wire type and validated before
// it becomes a domain value; a body that does not match its schema is
// reported as domain.ErrMalformedResponse.
package services
