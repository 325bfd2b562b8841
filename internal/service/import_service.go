package service

import (
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/photomap-backend/internal/models"
	"github.com/sefazor/photomap-backend/internal/repository"
	"github.com/sefazor/photomap-backend/pkg/metadata"
)

// ImportService turns extracted photo metadata into catalog records: filter
// items without coordinates, dedup by unique hash, persist the rest in one
// transaction.
type ImportService struct {
	recordRepo *repository.PhotoRecordRepository
	extractor  metadata.Extractor
	logger     *zap.Logger
}

func NewImportService(
	recordRepo *repository.PhotoRecordRepository,
	extractor metadata.Extractor,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		recordRepo: recordRepo,
		extractor:  extractor,
		logger:     logger,
	}
}

func (s *ImportService) ImportOne(meta models.PhotoMetadata) (repository.InsertOutcome, error) {
	outcome, err := s.recordRepo.InsertIfAbsent(meta)
	if err != nil {
		return outcome, fmt.Errorf("local persistence failed: %w", err)
	}
	return outcome, nil
}

// ImportBatch commits all staged inserts as one transaction. Per-item skips
// fold into the result counts; a commit failure aborts the whole batch and
// surfaces as a single error.
func (s *ImportService) ImportBatch(metas []models.PhotoMetadata) (models.ImportResult, error) {
	runID := uuid.NewString()

	result, err := s.recordRepo.InsertBulk(metas)
	if err != nil {
		s.logger.Error("import batch aborted",
			zap.String("run_id", runID),
			zap.Int("items", len(metas)),
			zap.Error(err),
		)
		return models.ImportResult{}, fmt.Errorf("local persistence failed: %w", err)
	}

	s.logger.Info("import batch committed",
		zap.String("run_id", runID),
		zap.Int("items", len(metas)),
		zap.Int("imported", result.Imported),
		zap.Int("skipped_no_location", result.SkippedNoLocation),
		zap.Int("skipped_duplicate", result.SkippedDuplicate),
	)
	return result, nil
}

// ImportFiles runs uploaded photos through the extractor and imports the
// resulting metadata as one batch. Extraction I/O errors abort the call
// before anything is staged.
func (s *ImportService) ImportFiles(files []*multipart.FileHeader) (models.ImportResult, error) {
	metas := make([]models.PhotoMetadata, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return models.ImportResult{}, fmt.Errorf("failed to open %s: %w", file.Filename, err)
		}
		meta, err := s.extractor.Extract(src, file.Filename)
		src.Close()
		if err != nil {
			return models.ImportResult{}, fmt.Errorf("metadata extraction failed for %s: %w", file.Filename, err)
		}
		metas = append(metas, meta)
	}
	return s.ImportBatch(metas)
}
