// internal/services/cleanup_service.go
package services

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CleanupService retries blob deletions that failed during product
// reconciliation. The reconciliation path still attempts each deletion
// exactly once; only failed URLs land here, where they are retried on an
// interval until they succeed or exhaust their attempts.
type CleanupService struct {
	blobs       BlobStore
	interval    time.Duration
	maxAttempts int

	mtx     sync.Mutex
	pending map[string]int // url -> attempts so far

	stop chan struct{}
	done chan struct{}
}

func NewCleanupService(blobs BlobStore, interval time.Duration, maxAttempts int) *CleanupService {
	return &CleanupService{
		blobs:       blobs,
		interval:    interval,
		maxAttempts: maxAttempts,
		pending:     make(map[string]int),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Enqueue schedules a stored URL for deferred deletion. Re-enqueueing an
// already pending URL is a no-op.
func (s *CleanupService) Enqueue(url string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.pending[url]; !exists {
		s.pending[url] = 0
	}
}

// Pending reports the number of URLs awaiting retry.
func (s *CleanupService) Pending() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.pending)
}

func (s *CleanupService) Start() {
	go s.run()
}

func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}

func (s *CleanupService) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}

// Sweep attempts every pending deletion once. URLs that keep failing are
// dropped after maxAttempts with an error log; orphaned blobs are an
// accepted cost at that point.
func (s *CleanupService) Sweep() {
	s.mtx.Lock()
	batch := make(map[string]int, len(s.pending))
	for url, attempts := range s.pending {
		batch[url] = attempts
	}
	s.mtx.Unlock()

	for url, attempts := range batch {
		err := s.blobs.DeleteFileByURL(url)

		s.mtx.Lock()
		if err == nil {
			delete(s.pending, url)
			s.mtx.Unlock()
			logrus.WithField("url", url).Info("Deferred blob deletion succeeded")
			continue
		}

		attempts++
		if attempts >= s.maxAttempts {
			delete(s.pending, url)
			s.mtx.Unlock()
			logrus.WithError(err).WithFields(logrus.Fields{
				"url":      url,
				"attempts": attempts,
			}).Error("Giving up on blob deletion, object orphaned")
			continue
		}

		s.pending[url] = attempts
		s.mtx.Unlock()
		logrus.WithError(err).WithFields(logrus.Fields{
			"url":      url,
			"attempts": attempts,
		}).Warn("Deferred blob deletion failed, will retry")
	}
}
