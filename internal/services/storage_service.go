// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hardwarehub/storefront-backend/internal/config"
)

// BlobStore is the object storage surface the product service depends on.
// Uploads return the public URL of the stored object; deletions are keyed off
// that URL.
type BlobStore interface {
	UploadFile(file multipart.File, header *multipart.FileHeader) (string, error)
	DeleteFileByURL(url string) error
}

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

func (s *StorageService) UploadFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.config.Upload.MaxFileSize > 0 && header.Size > s.config.Upload.MaxFileSize {
		return "", fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes",
			header.Size, s.config.Upload.MaxFileSize)
	}

	if len(s.config.Upload.AllowedTypes) > 0 {
		fileExt := strings.ToLower(filepath.Ext(header.Filename))
		allowed := false
		for _, allowedType := range s.config.Upload.AllowedTypes {
			if fileExt == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("file type %s is not allowed", fileExt)
		}
	}

	key := generateObjectKey(header.Filename)

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, header.Header.Get("Content-Type"))
	}

	return s.uploadToLocal(fileBytes, key)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key string) (string, error) {
	// Local development fallback; objects are not actually stored.
	return fmt.Sprintf("https://localhost:8080/uploads/%s", key), nil
}

// DeleteFileByURL derives the object key from a stored URL (the path minus
// its leading slash) and removes the object.
func (s *StorageService) DeleteFileByURL(storedURL string) error {
	key, err := KeyFromURL(storedURL)
	if err != nil {
		return err
	}

	if s.s3Client == nil {
		logrus.WithField("key", key).Debug("S3 not configured, skipping blob delete")
		return nil
	}

	_, err = s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// KeyFromURL extracts the object key from a stored blob URL.
func KeyFromURL(storedURL string) (string, error) {
	parsed, err := url.Parse(storedURL)
	if err != nil {
		return "", fmt.Errorf("invalid blob URL %q: %w", storedURL, err)
	}
	return strings.TrimPrefix(parsed.Path, "/"), nil
}

// generateObjectKey builds products/{unix-millis}-{random}-{originalFilename}.
func generateObjectKey(originalName string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:7]
	return fmt.Sprintf("products/%d-%s-%s", time.Now().UnixMilli(), token, originalName)
}

func (s *StorageService) objectURL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}
