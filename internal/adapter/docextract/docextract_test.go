package docextract

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

type fakeDecoder struct {
	text string
	err  error
}

func (f *fakeDecoder) DecodeText(_ context.Context, _, _ string) (string, error) {
	return f.text, f.err
}

type fakeRenderer struct {
	pages []string
	err   error
}

func (f *fakeRenderer) RenderPages(_ context.Context, _, _ string) ([]string, error) {
	return f.pages, f.err
}

type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) Recognize(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestExtractTxt(t *testing.T) {
	t.Parallel()
	svc := New(nil, nil, nil)
	doc := svc.Extract(context.Background(), []byte("hello\x00 world"), "resume.txt")
	assert.Equal(t, "txt", doc.Format)
	assert.Equal(t, domain.MethodNative, doc.Method)
	assert.Equal(t, "hello world", doc.Text)
	assert.Equal(t, len(doc.Text), doc.CharCount)
}

func TestExtractDocx(t *testing.T) {
	t.Parallel()
	svc := New(&fakeDecoder{text: "decoded body"}, nil, nil)
	doc := svc.Extract(context.Background(), []byte("payload"), "resume.docx")
	assert.Equal(t, "decoded body", doc.Text)
	assert.Equal(t, domain.MethodNative, doc.Method)
}

func TestExtractDocxDecoderFailureDegrades(t *testing.T) {
	t.Parallel()
	svc := New(&fakeDecoder{err: fmt.Errorf("boom")}, nil, nil)
	doc := svc.Extract(context.Background(), []byte("payload"), "resume.docx")
	assert.Empty(t, doc.Text)
	assert.Zero(t, doc.CharCount)
}

func TestExtractPDFNativeSufficient(t *testing.T) {
	t.Parallel()
	native := strings.Repeat("resume text ", 20)
	ocr := &fakeOCR{text: "should not be used"}
	svc := New(&fakeDecoder{text: native}, &fakeRenderer{pages: []string{"p1"}}, ocr)
	doc := svc.Extract(context.Background(), []byte("%PDF"), "resume.pdf")
	assert.Equal(t, domain.MethodNative, doc.Method)
	assert.Contains(t, doc.Text, "resume text")
	assert.Zero(t, ocr.calls)
}

func TestExtractPDFFallsBackToOCR(t *testing.T) {
	t.Parallel()
	longOCR := strings.Repeat("scanned words ", 30)
	ocr := &fakeOCR{text: longOCR}
	svc := New(&fakeDecoder{text: "tiny"}, &fakeRenderer{pages: []string{"p1", "p2"}}, ocr)
	doc := svc.Extract(context.Background(), []byte("%PDF"), "scan.pdf")
	assert.Equal(t, domain.MethodOCR, doc.Method)
	assert.Contains(t, doc.Text, "scanned words")
	assert.Equal(t, 2, ocr.calls)
}

func TestExtractPDFKeepsNativeWhenOCRWorse(t *testing.T) {
	t.Parallel()
	svc := New(&fakeDecoder{text: "short native"}, &fakeRenderer{pages: []string{"p1"}}, &fakeOCR{text: "x"})
	doc := svc.Extract(context.Background(), []byte("%PDF"), "scan.pdf")
	assert.Equal(t, domain.MethodNative, doc.Method)
	assert.Equal(t, "short native", doc.Text)
}

func TestExtractPDFRendererFailureKeepsNative(t *testing.T) {
	t.Parallel()
	svc := New(&fakeDecoder{text: "partial"}, &fakeRenderer{err: fmt.Errorf("render down")}, &fakeOCR{text: "unused"})
	doc := svc.Extract(context.Background(), []byte("%PDF"), "scan.pdf")
	assert.Equal(t, domain.MethodNative, doc.Method)
	assert.Equal(t, "partial", doc.Text)
}

func TestExtractImage(t *testing.T) {
	t.Parallel()
	svc := New(nil, nil, &fakeOCR{text: "image words"})
	doc := svc.Extract(context.Background(), []byte{0x89, 0x50}, "resume.png")
	assert.Equal(t, domain.MethodOCR, doc.Method)
	assert.Equal(t, "image words", doc.Text)
}

func TestExtractUnsupportedFormat(t *testing.T) {
	t.Parallel()
	svc := New(&fakeDecoder{text: "never"}, nil, nil)
	doc := svc.Extract(context.Background(), []byte("zip"), "resume.zip")
	assert.Empty(t, doc.Text)
	assert.Equal(t, "zip", doc.Format)
}
