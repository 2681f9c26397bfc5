// Package storage keeps uploaded media files on local disk.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

const (
	// sniffLen is how much of a file is read to detect its type.
	sniffLen = 3072
	// fallbackExt names files whose type has no known extension.
	fallbackExt = ".bin"
)

// Store writes files into a single flat directory under random names.
type Store struct {
	log *slog.Logger
	dir string
}

// New creates the upload directory if needed and returns a Store rooted there.
func New(log *slog.Logger, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &Store{log: log.With("adapter", "storage"), dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (s *Store) Dir() string { return s.dir }

// Save streams r to a new file. The stored name is a uuid with the extension
// of the type sniffed from the data, and that sniffed type is what gets
// recorded. The declared contentType only shows up in logs when it disagrees.
func (s *Store) Save(ctx context.Context, originalName, contentType string, r io.Reader) (domain.MediaFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.MediaFile{}, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return domain.MediaFile{}, fmt.Errorf("storage: read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !isGeneric(contentType) && !detected.Is(contentType) {
		s.log.WarnContext(ctx, "declared type does not match content",
			slog.String("original_name", filepath.Base(originalName)),
			slog.String("declared", contentType),
			slog.String("detected", detected.String()),
		)
	}

	ext := detected.Extension()
	if ext == "" {
		ext = fallbackExt
	}
	name := uuid.NewString() + ext

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("storage: create file: %w", err)
	}

	_, err = io.Copy(f, io.MultiReader(bytes.NewReader(head), r))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return domain.MediaFile{}, fmt.Errorf("storage: write file: %w", err)
	}

	s.log.DebugContext(ctx, "file stored",
		slog.String("filename", name),
		slog.String("mime_type", detected.String()),
	)
	return domain.MediaFile{Filename: name, MimeType: detected.String()}, nil
}

// SaveParts stores every multipart file. If any file fails, files already
// written by this call are removed.
func (s *Store) SaveParts(ctx context.Context, parts []*multipart.FileHeader) ([]domain.MediaFile, error) {
	files := make([]domain.MediaFile, 0, len(parts))
	for _, fh := range parts {
		mf, err := s.savePart(ctx, fh)
		if err != nil {
			s.Remove(files...)
			return nil, err
		}
		files = append(files, mf)
	}
	return files, nil
}

func (s *Store) savePart(ctx context.Context, fh *multipart.FileHeader) (domain.MediaFile, error) {
	src, err := fh.Open()
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("storage: open part %q: %w", fh.Filename, err)
	}
	defer src.Close()

	return s.Save(ctx, fh.Filename, fh.Header.Get("Content-Type"), src)
}

// Remove deletes stored files, logging failures.
func (s *Store) Remove(files ...domain.MediaFile) {
	for _, f := range files {
		if err := os.Remove(filepath.Join(s.dir, filepath.Base(f.Filename))); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("remove stored file", slog.String("filename", f.Filename), slog.String("error", err.Error()))
		}
	}
}

func isGeneric(contentType string) bool {
	ct := strings.TrimSpace(strings.ToLower(contentType))
	return ct == "" || strings.HasPrefix(ct, "application/octet-stream")
}
