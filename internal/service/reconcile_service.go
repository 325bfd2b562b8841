package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sefazor/photomap-backend/internal/models"
	"github.com/sefazor/photomap-backend/internal/repository"
	"github.com/sefazor/photomap-backend/pkg/remote"
)

// ReconcileService provides read-only remote tallies for comparison against
// the local count, plus the public-store purge. It never writes to the
// private mirror.
type ReconcileService struct {
	recordRepo *repository.PhotoRecordRepository
	mirror     remote.Store
	public     remote.Store
	batchSize  int
	logger     *zap.Logger
}

func NewReconcileService(
	recordRepo *repository.PhotoRecordRepository,
	mirror remote.Store,
	public remote.Store,
	batchSize int,
	logger *zap.Logger,
) *ReconcileService {
	if batchSize <= 0 || batchSize > remote.BatchLimit {
		batchSize = remote.BatchLimit
	}
	return &ReconcileService{
		recordRepo: recordRepo,
		mirror:     mirror,
		public:     public,
		batchSize:  batchSize,
		logger:     logger,
	}
}

func (s *ReconcileService) CountPrivate(ctx context.Context) (int, error) {
	return s.countAll(ctx, s.mirror)
}

func (s *ReconcileService) CountPublic(ctx context.Context) (int, error) {
	return s.countAll(ctx, s.public)
}

// countAll pages through the store until exhausted. Any page or per-entry
// failure aborts the count; a partial tally is never returned.
func (s *ReconcileService) countAll(ctx context.Context, store remote.Store) (int, error) {
	total := 0
	var cursor *string
	for {
		entries, next, err := store.Query(ctx, cursor)
		if err != nil {
			return 0, fmt.Errorf("remote operation failed: %w", err)
		}
		for _, entry := range entries {
			if entry.Err != nil {
				return 0, fmt.Errorf("remote operation failed: %w", entry.Err)
			}
			total++
		}
		if next == nil {
			return total, nil
		}
		cursor = next
	}
}

// Snapshot gathers the three tallies the comparison view needs.
func (s *ReconcileService) Snapshot(ctx context.Context) (models.ReconcileSnapshot, error) {
	local, err := s.recordRepo.Count()
	if err != nil {
		return models.ReconcileSnapshot{}, fmt.Errorf("local persistence failed: %w", err)
	}
	private, err := s.CountPrivate(ctx)
	if err != nil {
		return models.ReconcileSnapshot{}, err
	}
	public, err := s.CountPublic(ctx)
	if err != nil {
		return models.ReconcileSnapshot{}, err
	}
	return models.ReconcileSnapshot{
		Local:   local,
		Private: private,
		Public:  public,
	}, nil
}

// DeletePublic enumerates every key in the public store, then deletes in
// bounded batches. A key the store refuses to delete is counted as
// not-deleted without aborting the remaining batches; the return value is
// the confirmed-deleted count only.
func (s *ReconcileService) DeletePublic(ctx context.Context) (int, error) {
	var keys []string
	var cursor *string
	for {
		entries, next, err := s.public.Query(ctx, cursor)
		if err != nil {
			return 0, fmt.Errorf("remote operation failed: %w", err)
		}
		for _, entry := range entries {
			if entry.Err != nil {
				return 0, fmt.Errorf("remote operation failed: %w", entry.Err)
			}
			keys = append(keys, entry.Key)
		}
		if next == nil {
			break
		}
		cursor = next
	}

	deleted := 0
	for start := 0; start < len(keys); start += s.batchSize {
		end := start + s.batchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		results, err := s.public.DeleteBatch(ctx, batch)
		if err != nil {
			return deleted, fmt.Errorf("remote operation failed: %w", err)
		}
		for _, key := range batch {
			if keyErr := results[key]; keyErr != nil {
				s.logger.Warn("public store refused delete",
					zap.String("unique_hash", key),
					zap.Error(keyErr),
				)
				continue
			}
			deleted++
		}
	}
	return deleted, nil
}
