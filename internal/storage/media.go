package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrBadUpload = errors.New("unsupported upload type")

// MediaStore accepts a binary blob and returns a public URL. Files land under
// the configured media directory and are served by the /media/* route.
type MediaStore struct {
	Dir string
}

func NewMediaStore(dir string) (*MediaStore, error) {
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &MediaStore{Dir: dir}, nil
}

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true,
}

// Save stores an uploaded file under a generated name and returns its public
// URL path. The original filename contributes only its extension.
func (m *MediaStore) Save(fh *multipart.FileHeader, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", ErrBadUpload
	}
	name := prefix + "-" + uuid.NewString() + ext
	dst := filepath.Join(m.Dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return "/media/" + name, nil
}
