package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pdf-summarizer/internal/domain"
)

// fakePages is a synthetic document served page by page.
type fakePages struct {
	pages   []string
	failAt  int // 0-based page that errors, -1 for none
	block   chan struct{}
	blockAt int
	closed  atomic.Bool
}

func newFakePages(pages ...string) *fakePages {
	return &fakePages{pages: pages, failAt: -1, blockAt: -1}
}

func (f *fakePages) NumPage() int { return len(f.pages) }

func (f *fakePages) Text(pageNumber int) (string, error) {
	if pageNumber == f.blockAt {
		<-f.block
	}
	if pageNumber == f.failAt {
		return "", errors.New("cannot decode content stream")
	}
	return f.pages[pageNumber], nil
}

func (f *fakePages) Close() error {
	f.closed.Store(true)
	return nil
}

func newTestExtractor(doc *fakePages, openErr error) *PDFExtractor {
	extractor := NewPDFExtractor(NewMockLogger(), time.Second)
	extractor.open = func(path string) (pageDocument, error) {
		if openErr != nil {
			return nil, openErr
		}
		return doc, nil
	}
	return extractor
}

func TestPDFExtractor_PageOrder(t *testing.T) {
	doc := newFakePages("A", "B", "C")
	extractor := newTestExtractor(doc, nil)

	text, err := extractor.Extract(context.Background(), domain.DocumentHandle{Path: "synthetic.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ABC" {
		t.Fatalf("expected pages concatenated in order, got %q", text)
	}
	if !doc.closed.Load() {
		t.Fatal("expected document to be closed")
	}
}

func TestPDFExtractor_NormalizesAcrossPages(t *testing.T) {
	doc := newFakePages("  First page\n\nline two ", "\n", "last\tpage\n")
	extractor := newTestExtractor(doc, nil)

	text, err := extractor.Extract(context.Background(), domain.DocumentHandle{Path: "synthetic.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "First page line two last page" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestPDFExtractor_ImageOnlyDocument(t *testing.T) {
	doc := newFakePages("", "", "")
	extractor := newTestExtractor(doc, nil)

	text, err := extractor.Extract(context.Background(), domain.DocumentHandle{Path: "scan.pdf"})
	if err != nil {
		t.Fatalf("expected no error for a document without text, got %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestPDFExtractor_OpenFailure(t *testing.T) {
	extractor := newTestExtractor(nil, errors.New("not a PDF"))

	_, err := extractor.Extract(context.Background(), domain.DocumentHandle{Path: "corrupt.pdf"})

	var extractErr *domain.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractErr.Page != 0 {
		t.Fatalf("expected page 0 for open failure, got %d", extractErr.Page)
	}
}

func TestPDFExtractor_PageFailureClosesDocument(t *testing.T) {
	doc := newFakePages("A", "B", "C")
	doc.failAt = 1
	extractor := newTestExtractor(doc, nil)

	_, err := extractor.Extract(context.Background(), domain.DocumentHandle{Path: "broken.pdf"})

	var extractErr *domain.ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractErr.Page != 2 {
		t.Fatalf("expected failure on page 2, got %d", extractErr.Page)
	}
	if !doc.closed.Load() {
		t.Fatal("expected document to be closed on error")
	}
}

func TestPDFExtractor_PageTimeout(t *testing.T) {
	doc := newFakePages("A", "B")
	doc.block = make(chan struct{})
	doc.blockAt = 1
	extractor := newTestExtractor(doc, nil)
	extractor.pageTimeout = 20 * time.Millisecond

	_, err := extractor.Extract(context.Background(), domain.DocumentHandle{Path: "slow.pdf"})

	var extractErr *domain.ExtractionError
	if !errors.As(err, &extractErr) || extractErr.Page != 2 {
		t.Fatalf("expected timeout on page 2, got %v", err)
	}
	if doc.closed.Load() {
		t.Fatal("document must stay open while the stuck page is still reading")
	}

	close(doc.block)
	deadline := time.Now().Add(time.Second)
	for !doc.closed.Load() {
		if time.Now().After(deadline) {
			t.Fatal("expected document to be closed once the stuck page returned")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPDFExtractor_CanceledContext(t *testing.T) {
	doc := newFakePages("A", "B")
	extractor := newTestExtractor(doc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.Extract(ctx, domain.DocumentHandle{Path: "a.pdf"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !doc.closed.Load() {
		t.Fatal("expected document to be closed")
	}
}

func TestPDFExtractor_RealDocument(t *testing.T) {
	extractor := NewPDFExtractor(NewMockLogger(), 10*time.Second)

	text, err := extractor.Extract(context.Background(), domain.DocumentHandle{Path: filepath.Join("testdata", "two_pages.pdf")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := strings.Index(text, "First page text.")
	second := strings.Index(text, "Second page text.")
	if first < 0 || second < 0 {
		t.Fatalf("expected both pages in %q", text)
	}
	if first > second {
		t.Fatalf("expected pages in document order, got %q", text)
	}
	if text != Normalize(text) {
		t.Fatalf("expected normalized text, got %q", text)
	}
}

func TestPDFExtractor_RealCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	extractor := NewPDFExtractor(NewMockLogger(), 10*time.Second)
	_, err := extractor.Extract(context.Background(), domain.DocumentHandle{Path: path})

	var extractionErr *domain.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractionErr.Page != 0 {
		t.Fatalf("expected open failure (page 0), got page %d", extractionErr.Page)
	}
}
