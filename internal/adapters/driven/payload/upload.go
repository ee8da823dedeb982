package payload

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
)

// ReadFiles loads local files for an upload batch, in the given order.
// The media type comes from the extension, then from the content.
func ReadFiles(paths []string) ([]domain.UploadFile, error) {
	files := make([]domain.UploadFile, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, domain.UploadFile{
			Name:      filepath.Base(p),
			MediaType: MediaType(p, content),
			Content:   content,
		})
	}
	return files, nil
}

// MediaType guesses the media type of a file.
func MediaType(path string, content []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(content)
}

// Extension returns a file extension for mediaType, or "" when unknown.
func Extension(mediaType string) string {
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return ""
	}
	if base == "application/pdf" {
		return ".pdf"
	}
	exts, err := mime.ExtensionsByType(base)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
