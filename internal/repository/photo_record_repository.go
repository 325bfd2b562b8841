package repository

import (
	"fmt"
	"time"

	"github.com/sefazor/photomap-backend/internal/models"
	"gorm.io/gorm"
)

// InsertOutcome tells the caller what happened to a single metadata item.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	SkippedDuplicate
	SkippedNoLocation
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case SkippedDuplicate:
		return "skipped-duplicate"
	case SkippedNoLocation:
		return "skipped-no-location"
	default:
		return "unknown"
	}
}

type PhotoRecordRepository struct {
	db *gorm.DB
}

func NewPhotoRecordRepository(db *gorm.DB) *PhotoRecordRepository {
	return &PhotoRecordRepository{
		db: db,
	}
}

// insertIfAbsent runs the check-then-insert for one item inside tx. seen
// carries the hashes already inserted earlier in the same bulk call so the
// second occurrence of a hash in one batch is a skip, not a second row.
// Correctness relies on the store serializing writers; see the concurrency
// notes in DESIGN.md.
func insertIfAbsent(tx *gorm.DB, meta models.PhotoMetadata, seen map[string]bool) (InsertOutcome, error) {
	if !meta.HasLocation() {
		return SkippedNoLocation, nil
	}

	hash := meta.UniqueHash()
	if hash != "" {
		if seen[hash] {
			return SkippedDuplicate, nil
		}
		var count int64
		if err := tx.Model(&models.PhotoRecord{}).Where("unique_hash = ?", hash).Count(&count).Error; err != nil {
			return SkippedDuplicate, err
		}
		if count > 0 {
			return SkippedDuplicate, nil
		}
	}

	record := models.PhotoRecord{
		SavedAt:     time.Now(),
		AssetID:     meta.AssetID,
		UniqueHash:  hash,
		Latitude:    *meta.Latitude,
		Longitude:   *meta.Longitude,
		CaptureDate: meta.CaptureDate,
		Filename:    meta.Filename,
	}
	if err := tx.Create(&record).Error; err != nil {
		return SkippedDuplicate, err
	}

	if hash != "" {
		seen[hash] = true
	}
	return Inserted, nil
}

func (r *PhotoRecordRepository) InsertIfAbsent(meta models.PhotoMetadata) (InsertOutcome, error) {
	outcome := SkippedNoLocation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		outcome, txErr = insertIfAbsent(tx, meta, make(map[string]bool))
		return txErr
	})
	if err != nil {
		return outcome, err
	}
	return outcome, nil
}

// InsertBulk applies InsertIfAbsent semantics per item inside one transaction.
// A commit failure aborts the whole batch, nothing is partially persisted.
func (r *PhotoRecordRepository) InsertBulk(metas []models.PhotoMetadata) (models.ImportResult, error) {
	var result models.ImportResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]bool)
		for _, meta := range metas {
			outcome, err := insertIfAbsent(tx, meta, seen)
			if err != nil {
				return err
			}
			switch outcome {
			case Inserted:
				result.Imported++
			case SkippedDuplicate:
				result.SkippedDuplicate++
			case SkippedNoLocation:
				result.SkippedNoLocation++
			}
		}
		return nil
	})
	if err != nil {
		return models.ImportResult{}, err
	}
	return result, nil
}

func (r *PhotoRecordRepository) FetchAll() ([]models.PhotoRecord, error) {
	var records []models.PhotoRecord
	err := r.db.Order("saved_at DESC").Find(&records).Error
	return records, err
}

func (r *PhotoRecordRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PhotoRecord{}).Count(&count).Error
	return count, err
}

// FetchRandomSample returns up to n distinct records, uniformly sampled
// without replacement. RANDOM() is understood by both sqlite and postgres.
func (r *PhotoRecordRepository) FetchRandomSample(n int) ([]models.PhotoRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	var records []models.PhotoRecord
	err := r.db.Order("RANDOM()").Limit(n).Find(&records).Error
	return records, err
}

func (r *PhotoRecordRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM photo_records").Error
}

// DeleteAt deletes by position against a caller-supplied snapshot of the
// listing. Positions are resolved to row ids before deleting, so a stale
// snapshot removes the rows the caller actually saw.
func (r *PhotoRecordRepository) DeleteAt(indices []int, snapshot []models.PhotoRecord) error {
	if len(indices) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(snapshot) {
			return fmt.Errorf("index %d out of range for %d records", idx, len(snapshot))
		}
		ids = append(ids, snapshot[idx].ID)
	}
	return r.db.Delete(&models.PhotoRecord{}, ids).Error
}

func (r *PhotoRecordRepository) FetchUnpublished() ([]models.PhotoRecord, error) {
	var records []models.PhotoRecord
	err := r.db.Where("is_published = ?", false).Order("saved_at DESC").Find(&records).Error
	return records, err
}

// MarkPublished flips the publish flag for exactly the given rows in one
// statement. The flag never reverts; callers pass only remotely confirmed ids.
func (r *PhotoRecordRepository) MarkPublished(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.PhotoRecord{}).Where("id IN ?", ids).Update("is_published", true).Error
}
