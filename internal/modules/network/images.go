package network

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	MaxImageSize   = 5 * 1024 * 1024
	countriesDir   = "countries"
	StaticURLBase  = "/static"
	sniffChunkSize = 512
)

var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageStore writes country images under baseDir; baseDir is served at StaticURLBase.
type ImageStore struct {
	baseDir string
}

func NewImageStore(baseDir string) *ImageStore {
	return &ImageStore{baseDir: baseDir}
}

// Save validates the upload by content sniffing and stores it under a random name.
// It returns the public URL path and the file path on disk.
func (s *ImageStore) Save(fh *multipart.FileHeader) (url string, path string, err error) {
	if fh.Size == 0 {
		return "", "", ErrEmptyFile
	}
	if fh.Size > MaxImageSize {
		return "", "", ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	buf := make([]byte, sniffChunkSize)
	n, _ := io.ReadFull(src, buf)
	ext, ok := imageExts[mimetype.Detect(buf[:n]).String()]
	if !ok {
		return "", "", ErrInvalidMimeType
	}

	dir := filepath.Join(s.baseDir, countriesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	path = filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}

	_, err = io.Copy(dst, io.MultiReader(bytes.NewReader(buf[:n]), src))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", "", fmt.Errorf("write file: %w", err)
	}

	return StaticURLBase + "/" + countriesDir + "/" + name, path, nil
}

// Remove deletes a previously stored image given its public URL. Unknown paths are ignored.
func (s *ImageStore) Remove(url string) {
	prefix := StaticURLBase + "/" + countriesDir + "/"
	if !strings.HasPrefix(url, prefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(url, prefix))
	_ = os.Remove(filepath.Join(s.baseDir, countriesDir, name))
}
