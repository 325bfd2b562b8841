package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/photomap-backend/internal/models"
	"github.com/sefazor/photomap-backend/internal/repository"
	"github.com/sefazor/photomap-backend/pkg/remote"
)

// PublishService uploads the unpublished local subset to the shared public
// store in bounded batches and flips the publish flag for exactly the keys
// the store confirmed.
type PublishService struct {
	recordRepo *repository.PhotoRecordRepository
	public     remote.Store
	batchSize  int
	logger     *zap.Logger
}

func NewPublishService(
	recordRepo *repository.PhotoRecordRepository,
	public remote.Store,
	batchSize int,
	logger *zap.Logger,
) *PublishService {
	if batchSize <= 0 || batchSize > remote.BatchLimit {
		batchSize = remote.BatchLimit
	}
	return &PublishService{
		recordRepo: recordRepo,
		public:     public,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Publish returns the number of records confirmed written. Batches are issued
// sequentially, each awaited before the next; a remote call failure aborts
// the operation but everything committed by prior batches stays committed and
// stays marked. Partial publish is a legitimate terminal state.
func (s *PublishService) Publish(ctx context.Context, username string) (int, error) {
	if strings.TrimSpace(username) == "" {
		return 0, ErrInvalidUsername
	}
	if err := s.public.CheckSession(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotSignedIn, err)
	}

	records, err := s.recordRepo.FetchUnpublished()
	if err != nil {
		return 0, fmt.Errorf("local persistence failed: %w", err)
	}

	// Records without a dedup key have no remote identity and cannot be
	// published.
	idByHash := make(map[string]uint)
	points := make([]models.PublicPhotoPoint, 0, len(records))
	for _, record := range records {
		if record.UniqueHash == "" {
			continue
		}
		idByHash[record.UniqueHash] = record.ID
		points = append(points, models.PublicPhotoPoint{
			Username:    username,
			UniqueHash:  record.UniqueHash,
			Latitude:    record.Latitude,
			Longitude:   record.Longitude,
			CaptureDate: record.CaptureDate,
		})
	}

	runID := uuid.NewString()
	published := 0
	for start := 0; start < len(points); start += s.batchSize {
		end := start + s.batchSize
		if end > len(points) {
			end = len(points)
		}
		batch := points[start:end]

		results, err := s.public.UpsertBatch(ctx, batch)
		if err != nil {
			return published, fmt.Errorf("remote operation failed: %w", err)
		}

		confirmed := make([]uint, 0, len(batch))
		for _, point := range batch {
			if keyErr := results[point.UniqueHash]; keyErr != nil {
				s.logger.Warn("record rejected by public store",
					zap.String("run_id", runID),
					zap.String("unique_hash", point.UniqueHash),
					zap.Error(keyErr),
				)
				continue
			}
			confirmed = append(confirmed, idByHash[point.UniqueHash])
		}

		// Flag flip is one statement per batch, scoped to the confirmed set.
		if err := s.recordRepo.MarkPublished(confirmed); err != nil {
			return published, fmt.Errorf("local persistence failed: %w", err)
		}
		published += len(confirmed)
	}

	s.logger.Info("publish finished",
		zap.String("run_id", runID),
		zap.String("username", username),
		zap.Int("candidates", len(points)),
		zap.Int("published", published),
	)
	return published, nil
}
