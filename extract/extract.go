// Package extract converts uploaded document bytes into plain text.
// Supported formats: plain text, PDF, and DOCX (Word-processing XML).
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	MimeTypeText = "text/plain"
	MimeTypePDF  = "application/pdf"
	MimeTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedMediaType means the MIME type (and extension fallback)
	// matches none of the supported formats. Legacy .doc is unsupported.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrEmptyContent means extraction yielded only whitespace.
	ErrEmptyContent = errors.New("document contains no extractable text")

	// ErrExtractionFailed means the bytes could not be parsed as the
	// resolved format, e.g. a truncated PDF or a mislabeled file.
	ErrExtractionFailed = errors.New("text extraction failed")
)

// Extract returns the plain text of a document. mimeType is the declared
// media type; filename is used only for extension-based fallback sniffing
// and diagnostics. Extraction is a single pass, no retries.
func Extract(data []byte, mimeType, filename string) (string, error) {
	var (
		text string
		err  error
	)

	switch resolveFormat(mimeType, filename) {
	case MimeTypeText:
		text = string(data)
	case MimeTypePDF:
		text, err = extractPDF(data)
	case MimeTypeDocx:
		text, err = extractDocx(data)
	default:
		return "", fmt.Errorf("%w: %q (%s)", ErrUnsupportedMediaType, mimeType, filename)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExtractionFailed, filename, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyContent
	}

	return text, nil
}

// resolveFormat maps a declared MIME type to a supported format, falling
// back to the filename extension when the type is missing or generic.
func resolveFormat(mimeType, filename string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.IndexByte(mt, ';'); idx >= 0 {
		mt = strings.TrimSpace(mt[:idx])
	}

	switch {
	case mt == MimeTypePDF:
		return MimeTypePDF
	case mt == MimeTypeDocx:
		return MimeTypeDocx
	case strings.HasPrefix(mt, "text/"):
		return MimeTypeText
	}

	if mt == "" || mt == "application/octet-stream" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".txt":
			return MimeTypeText
		case ".pdf":
			return MimeTypePDF
		case ".docx":
			return MimeTypeDocx
		}
	}

	return ""
}
