// internal/services/cleanup_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupServiceSweepRemovesSucceeded(t *testing.T) {
	blobs := newFakeBlobStore()
	service := NewCleanupService(blobs, 0, 3)

	service.Enqueue("https://cdn.test/products/a.jpg")
	service.Enqueue("https://cdn.test/products/b.jpg")
	assert.Equal(t, 2, service.Pending())

	service.Sweep()

	assert.Equal(t, 0, service.Pending())
	assert.ElementsMatch(t, []string{
		"https://cdn.test/products/a.jpg",
		"https://cdn.test/products/b.jpg",
	}, blobs.deleteCalls())
}

func TestCleanupServiceRetriesFailures(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.failDeletes["https://cdn.test/products/stuck.jpg"] = true
	service := NewCleanupService(blobs, 0, 3)

	service.Enqueue("https://cdn.test/products/stuck.jpg")

	service.Sweep()
	assert.Equal(t, 1, service.Pending())

	// Once the store recovers the next sweep clears the backlog.
	delete(blobs.failDeletes, "https://cdn.test/products/stuck.jpg")
	service.Sweep()
	assert.Equal(t, 0, service.Pending())
}

func TestCleanupServiceGivesUpAfterMaxAttempts(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.failDeletes["*"] = true
	service := NewCleanupService(blobs, 0, 3)

	service.Enqueue("https://cdn.test/products/orphan.jpg")

	service.Sweep()
	service.Sweep()
	assert.Equal(t, 1, service.Pending())

	// Third failure exhausts the attempts and drops the URL.
	service.Sweep()
	assert.Equal(t, 0, service.Pending())
	assert.Len(t, blobs.deleteCalls(), 3)
}

func TestCleanupServiceEnqueueIsIdempotent(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.failDeletes["*"] = true
	service := NewCleanupService(blobs, 0, 5)

	service.Enqueue("https://cdn.test/products/a.jpg")
	service.Sweep()

	// Re-enqueueing must not reset the attempt counter.
	service.Enqueue("https://cdn.test/products/a.jpg")
	assert.Equal(t, 1, service.Pending())

	service.mtx.Lock()
	attempts := service.pending["https://cdn.test/products/a.jpg"]
	service.mtx.Unlock()
	assert.Equal(t, 1, attempts)
}
