// internal/services/services_test.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hardwarehub/storefront-backend/internal/models"
)

// fakeBlobStore records every upload and delete so tests can assert exactly
// which blobs an operation touched. Failures are programmable per filename
// (uploads) and per URL (deletes); "*" fails everything.
type fakeBlobStore struct {
	mtx         sync.Mutex
	uploads     []string
	deletes     []string
	failUploads map[string]bool
	failDeletes map[string]bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		failUploads: make(map[string]bool),
		failDeletes: make(map[string]bool),
	}
}

func (f *fakeBlobStore) UploadFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.failUploads["*"] || f.failUploads[header.Filename] {
		return "", errors.New("simulated upload failure")
	}

	url := "https://cdn.test/products/" + header.Filename
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeBlobStore) DeleteFileByURL(url string) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.deletes = append(f.deletes, url)
	if f.failDeletes["*"] || f.failDeletes[url] {
		return errors.New("simulated delete failure")
	}
	return nil
}

func (f *fakeBlobStore) deleteCalls() []string {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]string{}, f.deletes...)
}

func (f *fakeBlobStore) resetCalls() {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.uploads = nil
	f.deletes = nil
}

// makeFileHeaders builds real multipart file headers the way gin would hand
// them to a handler, so header.Open works in the upload path.
func makeFileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range names {
		part, err := writer.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return form.File["images"]
}

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.User{}, &models.Admin{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
