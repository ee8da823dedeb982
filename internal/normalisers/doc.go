// Package normalisers provides implementations of the Normaliser interface
// for the document formats the viewer can display. Each normaliser knows
// how to extract readable text from a specific MIME type.
//
// Normalisers are registered with a Registry at startup; the payload
// decoder asks the registry for the text of each downloaded payload.
package normalisers
