package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// jobRecord tracks one submitted proof job.
type jobRecord struct {
	id         string
	mode       string
	createdAt  time.Time
	failReason string
}

// JobStore keeps submitted jobs in memory. Jobs transition from pending to
// complete once the proving delay elapses, unless primed to fail.
type JobStore struct {
	mu    sync.RWMutex
	jobs  map[string]*jobRecord
	delay time.Duration
	now   func() time.Time

	nextFailReason string
}

// NewJobStore returns a store whose jobs complete after delay.
func NewJobStore(delay time.Duration) *JobStore {
	return &JobStore{
		jobs:  make(map[string]*jobRecord),
		delay: delay,
		now:   time.Now,
	}
}

// Create registers a new job and returns its identifier.
func (s *JobStore) Create(mode string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	rec := &jobRecord{id: id, mode: mode, createdAt: s.now()}
	if s.nextFailReason != "" {
		rec.failReason = s.nextFailReason
		s.nextFailReason = ""
	}
	s.jobs[id] = rec
	return id
}

// FailNext primes the next submitted job to terminate with the given reason.
func (s *JobStore) FailNext(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextFailReason = reason
}

// jobStatusResult is the status query result shape on the wire.
type jobStatusResult struct {
	Status        string `json:"status"`
	Proof         string `json:"proof,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
	JobID         string `json:"jobID"`
	Mode          string `json:"mode"`
}

// Status reports the current state of a job.
func (s *JobStore) Status(id string) (jobStatusResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.jobs[id]
	if !ok {
		return jobStatusResult{}, fmt.Errorf("unknown job %q", id)
	}

	res := jobStatusResult{JobID: rec.id, Mode: rec.mode}
	switch {
	case rec.failReason != "":
		res.Status = "error"
		res.FailureReason = rec.failReason
	case s.now().Sub(rec.createdAt) < s.delay:
		res.Status = "pending"
	default:
		res.Status = "complete"
		// Deterministic payload so repeated queries agree.
		res.Proof = hexutil.Encode(crypto.Keccak256([]byte(rec.id)))
	}
	return res, nil
}

// Len reports how many jobs the store holds.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
