package storage

import (
	"context"
	"sync"
	"time"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/ports"
)

// MemoryRepository keeps records in process memory. Used for dry runs and tests.
type MemoryRepository struct {
	mu         sync.Mutex
	partitions map[string][]domain.Record
	now        func() time.Time
}

var _ ports.RecordStore = (*MemoryRepository)(nil)

// NewMemoryRepository returns an empty repository stamping records with time.Now.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{partitions: map[string][]domain.Record{}, now: time.Now}
}

// Exists reports whether partition holds a record with the same title and link.
func (r *MemoryRepository) Exists(_ context.Context, partition string, key domain.RecordKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.partitions[partition] {
		if rec.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

// Insert appends the record, assigning the ingestion timestamp.
func (r *MemoryRepository) Insert(_ context.Context, partition string, record domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.IngestedAt = r.now().UTC()
	r.partitions[partition] = append(r.partitions[partition], record)
	return nil
}

// Records returns a copy of the partition contents in insertion order.
func (r *MemoryRepository) Records(partition string) []domain.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Record, len(r.partitions[partition]))
	copy(out, r.partitions[partition])
	return out
}

// Count returns the number of records across all partitions.
func (r *MemoryRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, recs := range r.partitions {
		total += len(recs)
	}
	return total
}
