package utils

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload categories. Each carries its own extension allow-list.
const (
	UploadSubmissions   = "submissions"
	UploadThumbnails    = "thumbnails"
	UploadLessonContent = "lesson-content"
)

// MaxUploadSize is the per-file ceiling in bytes.
const MaxUploadSize = 20 << 20 // 20MB

var allowedExtensions = map[string][]string{
	UploadSubmissions:   {".pdf", ".docx", ".zip", ".rar", ".pptx", ".txt"},
	UploadThumbnails:    {".jpg", ".jpeg", ".png", ".webp"},
	UploadLessonContent: {".mp4", ".mov", ".webm", ".pdf", ".txt"},
}

var (
	ErrFileTooLarge   = errors.New("file exceeds the maximum upload size")
	ErrFileType       = errors.New("file type is not allowed for this upload")
	ErrUploadCategory = errors.New("unknown upload category")
)

// SaveUploadedFile validates and stores an uploaded file under
// <root>/<category>/ with a <prefix>_<uuid><ext> name and returns the
// public URL path.
func SaveUploadedFile(file *multipart.FileHeader, root, category, prefix string) (string, error) {
	extensions, ok := allowedExtensions[category]
	if !ok {
		return "", ErrUploadCategory
	}
	if file.Size > MaxUploadSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range extensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", ErrFileType
	}

	destDir := filepath.Join(root, category)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	newFilename := prefix + "_" + uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(destDir, newFilename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + category + "/" + newFilename, nil
}
