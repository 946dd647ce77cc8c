package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/metrics"
)

// PublicPrefix is where the upload directory is served.
const PublicPrefix = "/uploads/"

var allowed = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

type Service struct {
	dir      string
	maxBytes int64
	logger   *log.Logger
}

func New(dir string, maxBytes int64, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{dir: dir, maxBytes: maxBytes, logger: logger}
}

// Save stores an image under a generated name and returns its public URL
// path. The type is sniffed from the content; the client file name is only
// logged.
func (s *Service) Save(ctx context.Context, clientName string, r io.Reader) (string, error) {
	limit := s.maxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrInvalid)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: file larger than %d bytes", domain.ErrInvalid, limit)
	}
	mt := mimetype.Detect(data)
	if !allowed[mt.String()] {
		return "", fmt.Errorf("%w: unsupported file type %s", domain.ErrInvalid, mt.String())
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := domain.NewID("img") + mt.Extension()
	if err := writeFile(filepath.Join(s.dir, name), data); err != nil {
		s.logger.Printf("upload service: write name=%s error=%v", name, err)
		return "", err
	}
	metrics.ObserveWrite("upload", "create")
	s.logger.Printf("upload service: stored name=%s client_name=%q type=%s bytes=%d", name, clientName, mt.String(), len(data))
	return PublicPrefix + name, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
