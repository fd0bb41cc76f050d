package config

import (
	"bytes"
	"fmt"
	"os"

	storage "github.com/supabase-community/storage-go"
)

// StorageClient wraps the Supabase storage bucket that holds artwork and
// avatar images. Uploads return the public URL stored on the records.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

var Storage *StorageClient

func ConnectStorage() {
	baseURL := os.Getenv("SUPABASE_URL")
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "artes"
	}
	client := storage.NewClient(baseURL+"/storage/v1", os.Getenv("SUPABASE_SERVICE_KEY"), nil)

	Storage = &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *StorageClient) Upload(path, contentType string, data []byte) (string, error) {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.PublicURL(path), nil
}

func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

// Remove deletes objects by their public URLs. Best effort: callers delete
// database rows first and only log storage failures.
func (s *StorageClient) Remove(urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	paths := make([]string, 0, len(urls))
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
	for _, u := range urls {
		if len(u) > len(prefix) && u[:len(prefix)] == prefix {
			paths = append(paths, u[len(prefix):])
		}
	}
	if len(paths) == 0 {
		return nil
	}
	_, err := s.client.RemoveFile(s.bucket, paths)
	return err
}
