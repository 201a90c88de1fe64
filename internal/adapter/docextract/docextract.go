// Package docextract acquires text from uploaded documents.
//
// It dispatches on the declared format, tries native decoding first and
// falls back to OCR when a PDF yields too little text. Decoder and OCR
// failures never escape this package; they degrade to empty text and the
// caller enforces a minimum length before proceeding. All temporary files
// are removed on every exit path.
package docextract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
	"github.com/dhruvimehta17/pay-parity/internal/domain"
	"github.com/dhruvimehta17/pay-parity/pkg/textx"
)

// nativeMinChars is the threshold under which a PDF's native text is
// considered unusable and OCR is attempted.
const nativeMinChars = 100

var imageFormats = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "tiff": {}, "bmp": {}, "gif": {},
}

// Service implements domain.TextAcquirer over external decoder, renderer
// and OCR collaborators.
type Service struct {
	decoder  domain.DocumentDecoder
	renderer domain.PageRenderer
	ocr      domain.OCREngine
}

// New constructs the acquisition service. Renderer and OCR may be nil, in
// which case the OCR fallback is skipped.
func New(decoder domain.DocumentDecoder, renderer domain.PageRenderer, ocr domain.OCREngine) *Service {
	return &Service{decoder: decoder, renderer: renderer, ocr: ocr}
}

// Extract returns the text of an uploaded document. It never returns an
// error: unsupported formats and decode failures produce an empty Text.
func (s *Service) Extract(ctx context.Context, data []byte, filename string) domain.ExtractedDocument {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	doc := domain.ExtractedDocument{Format: format, Method: domain.MethodNative}
	lg := observability.LoggerFromContext(ctx)

	switch {
	case format == "txt":
		doc.Text = textx.SanitizeText(string(data))
	case format == "docx" || format == "doc":
		doc.Text = s.decodeViaFile(ctx, data, format)
	case format == "pdf":
		doc.Text, doc.Method = s.extractPDF(ctx, data)
	case isImage(format):
		doc.Text = s.ocrBytes(ctx, data, format)
		doc.Method = domain.MethodOCR
	default:
		lg.Warn("unsupported document format", slog.String("format", format))
	}

	doc.CharCount = len(doc.Text)
	observability.ExtractionsTotal.WithLabelValues(format, doc.Method).Inc()
	lg.Debug("document text extracted",
		slog.String("format", format),
		slog.String("method", doc.Method),
		slog.Int("chars", doc.CharCount))
	return doc
}

// decodeViaFile writes the payload to a temp file and runs the native
// decoder on it.
func (s *Service) decodeViaFile(ctx context.Context, data []byte, format string) string {
	if s.decoder == nil {
		return ""
	}
	path, cleanup, err := writeTemp(data, "."+format)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("temp file write failed", slog.Any("error", err))
		return ""
	}
	defer cleanup()

	text, err := s.decoder.DecodeText(ctx, path, format)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("native decode failed",
			slog.String("format", format), slog.Any("error", err))
		return ""
	}
	return textx.SanitizeText(text)
}

// extractPDF decodes native text per page; when the result is under the
// threshold it renders each page to an image, OCRs them, and keeps
// whichever text is longer.
func (s *Service) extractPDF(ctx context.Context, data []byte) (string, string) {
	lg := observability.LoggerFromContext(ctx)
	native := s.decodeViaFile(ctx, data, "pdf")
	if len(strings.TrimSpace(native)) >= nativeMinChars || s.renderer == nil || s.ocr == nil {
		return native, domain.MethodNative
	}

	lg.Info("low native text from pdf, attempting ocr", slog.Int("chars", len(native)))
	pdfPath, cleanup, err := writeTemp(data, ".pdf")
	if err != nil {
		return native, domain.MethodNative
	}
	defer cleanup()

	pagesDir, err := os.MkdirTemp("", "pages-*")
	if err != nil {
		return native, domain.MethodNative
	}
	defer func() { _ = os.RemoveAll(pagesDir) }()

	pages, err := s.renderer.RenderPages(ctx, pdfPath, pagesDir)
	if err != nil {
		lg.Warn("pdf page rendering failed", slog.Any("error", err))
		return native, domain.MethodNative
	}

	var b strings.Builder
	for _, page := range pages {
		text, err := s.ocr.Recognize(ctx, page)
		if err != nil {
			lg.Warn("ocr failed on page", slog.String("page", page), slog.Any("error", err))
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	ocrText := textx.SanitizeText(b.String())
	if len(ocrText) > len(strings.TrimSpace(native)) {
		lg.Info("ocr recovered more text than native extraction",
			slog.Int("ocr_chars", len(ocrText)), slog.Int("native_chars", len(native)))
		return ocrText, domain.MethodOCR
	}
	return native, domain.MethodNative
}

func (s *Service) ocrBytes(ctx context.Context, data []byte, format string) string {
	if s.ocr == nil {
		return ""
	}
	path, cleanup, err := writeTemp(data, "."+format)
	if err != nil {
		return ""
	}
	defer cleanup()

	text, err := s.ocr.Recognize(ctx, path)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("image ocr failed", slog.Any("error", err))
		return ""
	}
	return textx.SanitizeText(text)
}

func isImage(format string) bool {
	_, ok := imageFormats[format]
	return ok
}

func writeTemp(data []byte, suffix string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "upload-*"+suffix)
	if err != nil {
		return "", nil, err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}
