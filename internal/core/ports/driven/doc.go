// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RequestGateway: the single point of outbound HTTP access
//   - CredentialStore: holds the bearer token written by the login flow
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PayloadStore: transient storage for downloaded document payloads.
//     Without it the viewer cannot render pages.
//   - PageDecoder: splits a stored payload into renderable pages.
//   - NormaliserRegistry: picks a Normaliser by media type for the decoder.
//   - PostProcessorPipeline: reshapes decoded pages. Nil leaves them as is.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
