package extract

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-pdf/fpdf"
)

func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Text(50, 50, text)
		}
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	return buf.Bytes()
}

func TestExtract_PlainText(t *testing.T) {
	doc := Document{Data: []byte("Experience\n- built things"), MediaType: "text/plain; charset=utf-8"}

	got, err := Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "Experience\n- built things" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtract_PDFSkipsEmptyPages(t *testing.T) {
	data := buildPDF(t, "Experience at Acme", "", "Skills Go")

	got, err := Extract(context.Background(), Document{Data: data, MediaType: "application/pdf"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "Experience at Acme\nSkills Go" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want error
	}{
		{name: "whitespace text", doc: Document{Data: []byte(" \n\t "), MediaType: "text/plain"}, want: ErrEmptyContent},
		{name: "pdf without text", doc: Document{Data: buildPDF(t, "", ""), MediaType: "application/pdf"}, want: ErrEmptyContent},
		{name: "docx", doc: Document{Data: []byte("PK\x03\x04"), MediaType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}, want: ErrUnsupportedFormat},
		{name: "invalid utf8", doc: Document{Data: []byte{0xff, 0xfe, 0x41}, MediaType: "text/plain"}, want: ErrUnsupportedFormat},
		{name: "corrupt pdf", doc: Document{Data: []byte("%PDF-1.4 not really"), MediaType: "application/pdf"}, want: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(context.Background(), tt.doc)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Extract(ctx, Document{Data: []byte("hi"), MediaType: "text/plain"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveMediaType(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		fileName string
		data     []byte
		want     string
	}{
		{name: "declared pdf", declared: "Application/PDF", want: MimePDF},
		{name: "declared text with charset", declared: "text/plain; charset=utf-8", want: MimeText},
		{name: "octet stream pdf ext", declared: "application/octet-stream", fileName: "cv.PDF", want: MimePDF},
		{name: "missing type txt ext", fileName: "resume.txt", want: MimeText},
		{name: "sniffed pdf", data: []byte("%PDF-1.7\n..."), want: MimePDF},
		{name: "sniffed text", data: []byte("plain resume words"), want: MimeText},
		{name: "declared other", declared: "image/png", fileName: "resume.txt", want: "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveMediaType(tt.declared, tt.fileName, tt.data); got != tt.want {
				t.Fatalf("ResolveMediaType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoinPages(t *testing.T) {
	got := joinPages([]string{"one", "", "three", " "})
	if got != "one\nthree\n " {
		t.Fatalf("unexpected join: %q", got)
	}
}
