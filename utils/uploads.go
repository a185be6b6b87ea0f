package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageStore writes uploaded images below Dir and hands back public paths
// rooted at /uploads.
type ImageStore struct {
	Dir     string
	BaseURL string
}

func NewImageStore(dir, baseURL string) *ImageStore {
	return &ImageStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Save stores one file under the given kind (e.g. "restaurants").
func (s *ImageStore) Save(kind string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return "", Invalid("Only jpg, jpeg, png and webp images are allowed")
	}

	dir := filepath.Join(s.Dir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.BaseURL + path.Join("/uploads", kind, name), nil
}

// SaveAll stores every file or none; files written before a failure are removed.
func (s *ImageStore) SaveAll(kind string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		u, err := s.Save(kind, fh)
		if err != nil {
			s.Remove(urls...)
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// Remove deletes stored files by their public path. Missing files are ignored.
func (s *ImageStore) Remove(urls ...string) {
	for _, u := range urls {
		rel := strings.TrimPrefix(strings.TrimPrefix(u, s.BaseURL), "/uploads/")
		if rel == u || rel == "" || strings.Contains(rel, "..") {
			continue
		}
		if err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
			InfoLogger.Warnf("failed to remove upload %s: %v", u, err)
		}
	}
}
