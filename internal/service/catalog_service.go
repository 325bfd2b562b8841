package service

import (
	"fmt"

	"github.com/sefazor/photomap-backend/internal/models"
	"github.com/sefazor/photomap-backend/internal/repository"
)

// CatalogService exposes the read and delete side of the local catalog to the
// HTTP layer.
type CatalogService struct {
	recordRepo *repository.PhotoRecordRepository
}

func NewCatalogService(recordRepo *repository.PhotoRecordRepository) *CatalogService {
	return &CatalogService{
		recordRepo: recordRepo,
	}
}

func (s *CatalogService) ListRecords() ([]models.PhotoRecord, error) {
	records, err := s.recordRepo.FetchAll()
	if err != nil {
		return nil, fmt.Errorf("local persistence failed: %w", err)
	}
	return records, nil
}

func (s *CatalogService) CountRecords() (int64, error) {
	count, err := s.recordRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("local persistence failed: %w", err)
	}
	return count, nil
}

func (s *CatalogService) SampleRecords(n int) ([]models.PhotoRecord, error) {
	records, err := s.recordRepo.FetchRandomSample(n)
	if err != nil {
		return nil, fmt.Errorf("local persistence failed: %w", err)
	}
	return records, nil
}

// DeleteRecords deletes by position against a fresh listing, or everything
// when no indices are given. The positional contract assumes the listing has
// not changed since the caller saw it.
func (s *CatalogService) DeleteRecords(indices []int) error {
	if len(indices) == 0 {
		if err := s.recordRepo.DeleteAll(); err != nil {
			return fmt.Errorf("local persistence failed: %w", err)
		}
		return nil
	}

	snapshot, err := s.recordRepo.FetchAll()
	if err != nil {
		return fmt.Errorf("local persistence failed: %w", err)
	}
	if err := s.recordRepo.DeleteAt(indices, snapshot); err != nil {
		return fmt.Errorf("local persistence failed: %w", err)
	}
	return nil
}
