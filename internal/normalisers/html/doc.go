// Package html provides a Normaliser implementation for HTML documents.
// It extracts readable text, dropping scripts and styles and decoding
// entities, and turns explicit page breaks into form feeds.
package html
