package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sefazor/photomap-backend/pkg/remote"
)

func pageOfKeys(prefix string, n int) []remote.QueryEntry {
	entries := make([]remote.QueryEntry, n)
	for i := range entries {
		entries[i] = remote.QueryEntry{Key: fmt.Sprintf("%s%d", prefix, i)}
	}
	return entries
}

func TestCountPagesUntilExhausted(t *testing.T) {
	repo := newTestRepo(t)
	mirror := &fakeStore{pages: [][]remote.QueryEntry{
		pageOfKeys("p0-", 400),
		pageOfKeys("p1-", 50),
	}}
	svc := NewReconcileService(repo, mirror, &fakeStore{}, 0, zap.NewNop())

	count, err := svc.CountPrivate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 450, count)
}

func TestCountAbortsOnEntryError(t *testing.T) {
	repo := newTestRepo(t)
	entries := pageOfKeys("p0-", 10)
	entries[4].Err = errors.New("record unavailable")
	public := &fakeStore{pages: [][]remote.QueryEntry{entries}}
	svc := NewReconcileService(repo, &fakeStore{}, public, 0, zap.NewNop())

	_, err := svc.CountPublic(context.Background())
	assert.ErrorContains(t, err, "record unavailable")
}

func TestCountAbortsOnPageError(t *testing.T) {
	repo := newTestRepo(t)
	mirror := &fakeStore{queryErr: errors.New("service unavailable")}
	svc := NewReconcileService(repo, mirror, &fakeStore{}, 0, zap.NewNop())

	_, err := svc.CountPrivate(context.Background())
	assert.ErrorContains(t, err, "service unavailable")
}

func TestDeletePublicCountsConfirmedOnly(t *testing.T) {
	repo := newTestRepo(t)
	public := &fakeStore{
		pages: [][]remote.QueryEntry{
			pageOfKeys("p0-", 400),
			pageOfKeys("p1-", 50),
		},
		deleteKeyErrs: map[string]error{"p1-49": errors.New("not the creator")},
	}
	svc := NewReconcileService(repo, &fakeStore{}, public, 0, zap.NewNop())

	deleted, err := svc.DeletePublic(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 449, deleted)

	require.Len(t, public.deletes, 2)
	assert.Len(t, public.deletes[0], 400)
	assert.Len(t, public.deletes[1], 50)
}

func TestDeletePublicEmptyStore(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewReconcileService(repo, &fakeStore{}, &fakeStore{}, 0, zap.NewNop())

	deleted, err := svc.DeletePublic(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.InsertIfAbsent(located("a1", "x.jpg", 48.2, 16.4))
	require.NoError(t, err)

	mirror := &fakeStore{pages: [][]remote.QueryEntry{pageOfKeys("m-", 3)}}
	public := &fakeStore{pages: [][]remote.QueryEntry{pageOfKeys("p-", 2)}}
	svc := NewReconcileService(repo, mirror, public, 0, zap.NewNop())

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, snapshot.Local)
	assert.Equal(t, 3, snapshot.Private)
	assert.Equal(t, 2, snapshot.Public)
}
