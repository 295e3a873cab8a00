package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"pdf-summarizer/internal/domain"
)

// TempDocument is an uploaded PDF spooled to a temporary file.
// Callers defer Release right after creation.
type TempDocument struct {
	domain.DocumentHandle

	releaseOnce sync.Once
	releaseErr  error
}

// NewTempDocument copies r into a fresh temporary file under dir
// (the OS temp dir when dir is empty).
func NewTempDocument(dir, filename string, r io.Reader) (*TempDocument, error) {
	f, err := os.CreateTemp(dir, "upload-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	size, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	return &TempDocument{
		DocumentHandle: domain.DocumentHandle{
			Path:     f.Name(),
			Filename: filename,
			Size:     size,
		},
	}, nil
}

// Release deletes the temporary file. Safe to call more than once.
func (d *TempDocument) Release() error {
	d.releaseOnce.Do(func() {
		if err := os.Remove(d.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			d.releaseErr = err
		}
	})
	return d.releaseErr
}
