// Package payload stores downloaded document payloads in temporary files
// and decodes them into pages.
//
// Decoding is format agnostic: the normaliser registry picks an extractor
// by media type and form feeds in its output separate pages. PDF output
// from pdftotext already carries one form feed per page.
package payload
