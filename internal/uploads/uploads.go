package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFileSize caps individual uploads at 10MB
const MaxFileSize = 10 << 20

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file exceeds the 10MB limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedPrefixes gates uploads to images, video and PDF documents
var allowedPrefixes = []string{"image/", "video/"}

const pdfMimetype = "application/pdf"

// AllowedMimetype reports whether the content type may be stored
func AllowedMimetype(mimetype string) bool {
	if mimetype == pdfMimetype {
		return true
	}
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(mimetype, prefix) {
			return true
		}
	}
	return false
}

// DiskStore writes uploaded files under a base directory and maps them to
// served URL paths.
type DiskStore struct {
	baseDir string
	urlPath string
}

// NewDiskStore creates the upload directory if needed. urlPath is the public
// route prefix the files are served from.
func NewDiskStore(baseDir, urlPath string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &DiskStore{baseDir: baseDir, urlPath: strings.TrimSuffix(urlPath, "/")}, nil
}

// Stored describes a persisted upload
type Stored struct {
	Filename string
	Mimetype string
	Size     int64
	URL      string
}

// Save validates and persists one multipart file, returning its metadata with
// the public URL. The stored name is randomized; the original name survives
// only in the metadata.
func (s *DiskStore) Save(header *multipart.FileHeader) (*Stored, error) {
	if header == nil {
		return nil, ErrNoFile
	}
	if header.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	mimetype := header.Header.Get("Content-Type")
	if !AllowedMimetype(mimetype) {
		return nil, ErrUnsupportedType
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + sanitizeExt(header.Filename)
	dstPath := filepath.Join(s.baseDir, name)

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := copyLimited(dst, src, MaxFileSize)
	if err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	return &Stored{
		Filename: header.Filename,
		Mimetype: mimetype,
		Size:     written,
		URL:      s.urlPath + "/" + name,
	}, nil
}

// BaseDir is where the store keeps its files
func (s *DiskStore) BaseDir() string {
	return s.baseDir
}

// copyLimited copies at most limit bytes, erroring when the source is larger.
// The multipart header size is client-supplied, so the cap is re-enforced on
// the actual bytes.
func copyLimited(dst io.Writer, src io.Reader, limit int64) (int64, error) {
	written, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		return 0, fmt.Errorf("failed to write upload: %w", err)
	}
	if written > limit {
		return 0, ErrFileTooLarge
	}
	return written, nil
}

// sanitizeExt keeps only a plain extension from the client-supplied name
func sanitizeExt(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return strings.ToLower(ext)
}
