package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	MimePDF  = "application/pdf"
	MimeText = "text/plain"

	mimeOctetStream = "application/octet-stream"
)

var (
	// ErrUnsupportedFormat is returned when the resource is neither a PDF nor UTF-8 plain text.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrEmptyContent is returned when extraction yields only whitespace.
	ErrEmptyContent = errors.New("empty content")
)

// Document is an uploaded resume: raw bytes plus the declared media type.
// FileName is optional and only consulted when the media type is missing or generic.
type Document struct {
	Data      []byte
	MediaType string
	FileName  string
}

// Extract returns the plain text of doc.
func Extract(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch mediaType := ResolveMediaType(doc.MediaType, doc.FileName, doc.Data); mediaType {
	case MimePDF:
		text, err = extractPDF(doc.Data)
	case MimeText:
		text, err = extractPlain(doc.Data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mediaType)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

// ResolveMediaType normalizes the declared media type, falling back to the file
// extension and then to content sniffing when the declaration is empty or generic.
func ResolveMediaType(declared string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	if clean != "" && clean != mimeOctetStream {
		return clean
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".txt":
		return MimeText
	}

	if len(data) == 0 {
		return clean
	}
	sniffed := strings.Split(http.DetectContentType(data), ";")[0]
	return strings.TrimSpace(sniffed)
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupportedFormat)
	}
	return string(data), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", ErrUnsupportedFormat, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Image-only or malformed pages yield no text.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return joinPages(pages), nil
}

// joinPages joins page texts with a single newline, dropping pages without text.
func joinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "\n")
}
