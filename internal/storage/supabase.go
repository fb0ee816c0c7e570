package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
)

// SupabaseStorage holds uploaded manuscripts. The lifecycle core only ever
// sees the opaque public URL this client returns.
type SupabaseStorage struct {
	URL            string
	ServiceRoleKey string
	BucketName     string
}

func NewSupabaseStorage(url, serviceRoleKey, bucketName string) *SupabaseStorage {
	return &SupabaseStorage{
		URL:            url,
		ServiceRoleKey: serviceRoleKey,
		BucketName:     bucketName,
	}
}

// UploadManuscript uploads a manuscript to Supabase Storage and returns its
// public URL.
func (s *SupabaseStorage) UploadManuscript(file multipart.File, header *multipart.FileHeader) (string, error) {
	// Generate unique filename
	ext := filepath.Ext(header.Filename)
	filename := uuid.New().String() + ext

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.URL, s.BucketName, filename)
	req, err := http.NewRequest("POST", url, bytes.NewReader(fileBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.ServiceRoleKey)
	req.Header.Set("Content-Type", header.Header.Get("Content-Type"))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.URL, s.BucketName, filename)
	return publicURL, nil
}

// DeleteManuscript deletes a stored manuscript by object name.
func (s *SupabaseStorage) DeleteManuscript(filename string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.URL, s.BucketName, filename)
	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.ServiceRoleKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
