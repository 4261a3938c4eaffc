package utils

import (
	"crypto/rand"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrNoFile           = errors.New("no file uploaded")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	receiptContentTypes = map[string]bool{
		"image/jpeg":      true,
		"image/png":       true,
		"image/webp":      true,
		"application/pdf": true,
	}
	receiptExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".pdf":  true,
	}
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateReceiptFile(file *multipart.FileHeader) error
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 5 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ValidateReceiptFile accepts images and PDFs up to 5MB.
func (u *utils) ValidateReceiptFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	if contentType != "" && !receiptContentTypes[contentType] {
		return ErrUnsupportedFile
	}

	if !receiptExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return ErrUnsupportedFile
	}

	return nil
}
