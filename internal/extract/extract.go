// Package extract turns uploaded documents into plain text. Every extractor
// built by New is bounded by the configured timeout.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/vijay-prabhu/resumeats/internal/config"
)

// Content types understood by the local extractor
const (
	TypePDF   = "application/pdf"
	TypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypePlain = "text/plain"
)

// ErrTooLarge is returned when a document exceeds the configured size limit
var ErrTooLarge = errors.New("document too large")

// ErrUnsupported is returned for document types no extractor handles
var ErrUnsupported = errors.New("unsupported document type")

// Document is an uploaded file
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExtractionError wraps a failure of the text-extraction collaborator
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to extract text: %v", e.Err)
	}
	return fmt.Sprintf("failed to extract text from %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsExtractionError reports whether err is (or wraps) an ExtractionError
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}

// Extractor converts a document to plain text
type Extractor interface {
	Extract(ctx context.Context, doc Document) (string, error)
}

// New creates the extractor selected by cfg, bounded by its timeout
func New(cfg config.ExtractionConfig) Extractor {
	var ex Extractor
	switch cfg.Mode {
	case "remote":
		ex = NewRemote(cfg.ServiceURL)
	default:
		ex = NewLocal()
	}
	return WithTimeout(ex, cfg.Timeout())
}

// ReadDocument reads at most max bytes from r. Larger input fails with ErrTooLarge.
func ReadDocument(r io.Reader, name string, max int64) (Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return Document{}, &ExtractionError{Source: name, Err: err}
	}
	if int64(len(data)) > max {
		return Document{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, max)
	}
	return Document{Name: name, Data: data}, nil
}

// DetectType resolves a document's content type from its declared type,
// file extension or, failing both, its leading bytes.
func DetectType(doc Document) string {
	declared := strings.ToLower(strings.TrimSpace(strings.Split(doc.ContentType, ";")[0]))
	switch declared {
	case TypePDF, TypeDOCX, TypePlain:
		return declared
	}

	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDOCX
	case ".txt", ".md", ".text":
		return TypePlain
	}

	sniffed := http.DetectContentType(doc.Data)
	switch {
	case sniffed == TypePDF:
		return TypePDF
	case sniffed == "application/zip" && bytes.Contains(doc.Data, []byte("word/")):
		return TypeDOCX
	case strings.HasPrefix(sniffed, TypePlain):
		return TypePlain
	}
	return sniffed
}

type timeoutExtractor struct {
	next    Extractor
	timeout time.Duration
}

// WithTimeout bounds every call to ex by d. Parsers that ignore the context
// are abandoned when the deadline passes.
func WithTimeout(ex Extractor, d time.Duration) Extractor {
	if d <= 0 {
		return ex
	}
	return &timeoutExtractor{next: ex, timeout: d}
}

type extractResult struct {
	text string
	err  error
}

func (t *timeoutExtractor) Extract(ctx context.Context, doc Document) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan extractResult, 1)
	go func() {
		text, err := t.next.Extract(ctx, doc)
		done <- extractResult{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", &ExtractionError{Source: doc.Name, Err: ctx.Err()}
	}
}
