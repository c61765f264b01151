package proof

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxFileSize = 10 * 1024 * 1024 // 10 MB

	defaultBaseDir    = "./uploads"
	defaultStaticBase = "/static/uploads"
)

// AllowedMimeTypes limits proof uploads to transfer screenshots and receipts.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Service stores payment proof files on local disk: sniff the type, write the
// file under a date-sharded directory, return the handle the draft keeps.
type Service struct {
	baseDir    string
	staticBase string
}

func NewService(baseDir, staticBase string) *Service {
	if baseDir == "" {
		baseDir = defaultBaseDir
	}
	if staticBase == "" {
		staticBase = defaultStaticBase
	}
	return &Service{baseDir: baseDir, staticBase: staticBase}
}

// SaveProof validates and writes an uploaded proof. The returned path is
// relative to the uploads dir; the URL is what the UI may preview.
func (s *Service) SaveProof(ctx context.Context, draftID string, fileHeader *multipart.FileHeader) (string, string, error) {
	if fileHeader.Size == 0 {
		return "", "", ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return "", "", ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Detect MIME type from the first 512 bytes, not the client header.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return "", "", ErrInvalidMimeType
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	filename := fmt.Sprintf("%s_%s%s", draftID, uuid.New().String(), ext)

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath := filepath.Join(relDir, filename)
	fileURL := s.staticBase + "/" + strings.ReplaceAll(relPath, "\\", "/")
	return relPath, fileURL, nil
}

// Open returns the stored proof for streaming into the submission payload.
func (s *Service) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.baseDir, relPath))
}

// Remove deletes a stored proof after successful submission.
func (s *Service) Remove(relPath string) error {
	return os.Remove(filepath.Join(s.baseDir, relPath))
}

func mimeToExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
