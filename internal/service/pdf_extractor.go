package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"

	"github.com/gen2brain/go-fitz"
)

const defaultPageTimeout = 90 * time.Second

// pageDocument is the part of a fitz document the extractor reads.
type pageDocument interface {
	NumPage() int
	Text(pageNumber int) (string, error)
	Close() error
}

// PDFExtractor extracts plain text from PDF files with MuPDF.
type PDFExtractor struct {
	logger      domain.Logger
	pageTimeout time.Duration
	open        func(path string) (pageDocument, error)
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(logger domain.Logger, pageTimeout time.Duration) *PDFExtractor {
	if pageTimeout <= 0 {
		pageTimeout = defaultPageTimeout
	}
	return &PDFExtractor{
		logger:      logger,
		pageTimeout: pageTimeout,
		open:        openFitz,
	}
}

func openFitz(path string) (pageDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Extract reads every page in order, concatenates the page texts and returns
// them normalized. A document without a text layer yields "".
func (p *PDFExtractor) Extract(ctx context.Context, handle domain.DocumentHandle) (string, error) {
	doc, err := p.open(handle.Path)
	if err != nil {
		return "", &domain.ExtractionError{Cause: fmt.Errorf("failed to open PDF: %w", err)}
	}

	// A page stuck past its timeout still holds the document, so the close
	// is handed over to that page's goroutine.
	closeDoc := func() { _ = doc.Close() }
	defer func() { closeDoc() }()

	type pageResult struct {
		text string
		err  error
	}

	numPages := doc.NumPage()
	var sb strings.Builder

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", &domain.ExtractionError{Page: pageNum + 1, Cause: err}
		}

		p.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages, "file", handle.Filename)
		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			defer func() {
				if r := recover(); r != nil {
					resultCh <- pageResult{err: fmt.Errorf("panic: %v", r)}
				}
			}()
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		timer := time.NewTimer(p.pageTimeout)
		var res pageResult
		select {
		case res = <-resultCh:
			timer.Stop()
		case <-timer.C:
			p.logger.Warn("PDF page extraction timeout", "page", pageNum+1, "total", numPages, "timeout_sec", int(p.pageTimeout.Seconds()))
			closeDoc = func() {
				go func() {
					<-resultCh
					_ = doc.Close()
				}()
			}
			return "", &domain.ExtractionError{Page: pageNum + 1, Cause: fmt.Errorf("timeout after %v", p.pageTimeout)}
		case <-ctx.Done():
			timer.Stop()
			closeDoc = func() {
				go func() {
					<-resultCh
					_ = doc.Close()
				}()
			}
			return "", &domain.ExtractionError{Page: pageNum + 1, Cause: ctx.Err()}
		}

		if res.err != nil {
			p.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", res.err)
			return "", &domain.ExtractionError{Page: pageNum + 1, Cause: res.err}
		}
		sb.WriteString(res.text)
	}

	text := Normalize(sb.String())
	p.logger.Debug("PDF extraction finished", "pages", numPages, "chars", CharCount(text))
	return text, nil
}
