package upload

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Storage persists uploaded files under a single directory and builds
// their public URLs. Stored names carry the upload time and a random
// component so concurrent uploads from different users cannot collide.
type Storage struct {
	dir     string
	baseURL string
}

// New creates the uploads directory if needed.
func New(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Storage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *Storage) Dir() string {
	return s.dir
}

// SaveMultipart stores an uploaded form file and returns its public URL
// and stored name.
func (s *Storage) SaveMultipart(fh *multipart.FileHeader, fallbackPrefix string) (string, string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", apperr.Wrap(apperr.CodeValidation, "unreadable upload", err)
	}
	defer src.Close()

	name := SanitizeFilename(fh.Filename)
	if name == "" {
		name = fallbackPrefix
	}
	stored := fmt.Sprintf("%d_%s_%s", time.Now().Unix(), storedSalt(), name)

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", "", apperr.Storage(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", apperr.Storage(err)
	}
	return s.urlFor(stored), stored, nil
}

// SaveDataURL decodes a base64 data-URL payload and stores it. The
// extension is sniffed from the mime prefix: Word documents become
// .docx, everything else .pdf.
func (s *Storage) SaveDataURL(dataURL, prefix string) (string, string, error) {
	meta, b64, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(meta, "data:") {
		return "", "", apperr.Validation("Unsupported data format")
	}
	blob, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", "", apperr.Validation("Invalid base64 data")
	}

	ext := "pdf"
	if strings.Contains(meta, "officedocument") || strings.Contains(meta, "word") {
		ext = "docx"
	}
	stored := fmt.Sprintf("%d_%s_%s.%s", time.Now().Unix(), storedSalt(), prefix, ext)

	if err := os.WriteFile(filepath.Join(s.dir, stored), blob, 0o644); err != nil {
		return "", "", apperr.Storage(err)
	}
	return s.urlFor(stored), stored, nil
}

// Remove deletes a stored file, tolerating one that is already gone.
func (s *Storage) Remove(storedName string) error {
	storedName = filepath.Base(storedName)
	if storedName == "" || storedName == "." {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// StoredNameFromURL extracts the stored filename from a public upload
// URL, returning "" when the URL does not point at the uploads dir.
func StoredNameFromURL(url string) string {
	_, name, ok := strings.Cut(url, "/uploads/")
	if !ok {
		return ""
	}
	return filepath.Base(name)
}

// SanitizeFilename strips path components and anything outside a safe
// character set from a caller-supplied filename.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}

func (s *Storage) urlFor(stored string) string {
	return s.baseURL + "/uploads/" + stored
}

// storedSalt qualifies stored names beyond the second-resolution
// timestamp, so uploads landing in the same second never share a name.
func storedSalt() string {
	return uuid.New().String()[:8]
}
