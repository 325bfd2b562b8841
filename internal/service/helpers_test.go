package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sefazor/photomap-backend/internal/models"
	"github.com/sefazor/photomap-backend/internal/repository"
	"github.com/sefazor/photomap-backend/pkg/remote"
)

func newTestRepo(t *testing.T) *repository.PhotoRecordRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.PhotoRecord{}))
	return repository.NewPhotoRecordRepository(db)
}

func located(assetID, filename string, lat, long float64) models.PhotoMetadata {
	return models.PhotoMetadata{
		AssetID:   assetID,
		Filename:  filename,
		Latitude:  &lat,
		Longitude: &long,
	}
}

// fakeStore scripts a remote.Store: query pages by index, per-key upsert and
// delete outcomes, and an optional call-level failure at a given upsert call.
type fakeStore struct {
	sessionErr    error
	sessionChecks int

	pages    [][]remote.QueryEntry
	queryErr error

	upserts       [][]models.PublicPhotoPoint
	upsertKeyErrs map[string]error
	upsertFailAt  int // 1-based call number that returns a call error, 0 = never

	deletes       [][]string
	deleteKeyErrs map[string]error
}

func (f *fakeStore) CheckSession(ctx context.Context) error {
	f.sessionChecks++
	return f.sessionErr
}

func (f *fakeStore) Query(ctx context.Context, cursor *string) ([]remote.QueryEntry, *string, error) {
	if f.queryErr != nil {
		return nil, nil, f.queryErr
	}
	idx := 0
	if cursor != nil {
		idx, _ = strconv.Atoi(*cursor)
	}
	if idx >= len(f.pages) {
		return nil, nil, nil
	}
	page := f.pages[idx]
	if idx+1 < len(f.pages) {
		next := strconv.Itoa(idx + 1)
		return page, &next, nil
	}
	return page, nil, nil
}

func (f *fakeStore) UpsertBatch(ctx context.Context, points []models.PublicPhotoPoint) (remote.BatchResult, error) {
	f.upserts = append(f.upserts, points)
	if f.upsertFailAt > 0 && len(f.upserts) == f.upsertFailAt {
		return nil, context.DeadlineExceeded
	}
	results := make(remote.BatchResult, len(points))
	for _, p := range points {
		results[p.UniqueHash] = f.upsertKeyErrs[p.UniqueHash]
	}
	return results, nil
}

func (f *fakeStore) DeleteBatch(ctx context.Context, keys []string) (remote.BatchResult, error) {
	f.deletes = append(f.deletes, keys)
	results := make(remote.BatchResult, len(keys))
	for _, k := range keys {
		results[k] = f.deleteKeyErrs[k]
	}
	return results, nil
}
