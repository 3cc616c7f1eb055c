package helpers

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
)

// PhotoStore persists uploaded bootcamp photos under a deterministic name.
type PhotoStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// LocalPhotoStore writes photos to a directory on disk.
type LocalPhotoStore struct {
	Dir string
}

func NewLocalPhotoStore(dir string) *LocalPhotoStore {
	return &LocalPhotoStore{Dir: dir}
}

func (s *LocalPhotoStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return filename, nil
}

// GCSPhotoStore uploads photos to a Google Cloud Storage bucket.
type GCSPhotoStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSPhotoStore(client *storage.Client, bucket string) *GCSPhotoStore {
	return &GCSPhotoStore{Client: client, Bucket: bucket}
}

func (s *GCSPhotoStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	return UploadObject(ctx, s.Client, s.Bucket, "photos/"+filename, contentType, r)
}
