package remote

import (
	"context"

	"github.com/sefazor/photomap-backend/internal/models"
)

// BatchLimit is the most items the remote store accepts in one batched call.
const BatchLimit = 400

// QueryEntry is one record reference from a paged query. Err carries the
// per-record failure the store reported for that entry, if any.
type QueryEntry struct {
	Key string
	Err error
}

// BatchResult maps each submitted key to its outcome. A nil value means the
// store confirmed the write or delete for that key.
type BatchResult map[string]error

// Store is a shared, multi-writer remote record store. Implementations must
// honor BatchLimit and report per-key outcomes instead of failing a whole
// batch on one bad record; a non-nil call error means the batch itself could
// not be issued.
type Store interface {
	// CheckSession verifies the account/session precondition. It is consulted
	// before any data transfer.
	CheckSession(ctx context.Context) error
	// Query returns one page of entries plus a continuation cursor, or a nil
	// cursor when the result set is exhausted.
	Query(ctx context.Context, cursor *string) ([]QueryEntry, *string, error)
	UpsertBatch(ctx context.Context, points []models.PublicPhotoPoint) (BatchResult, error)
	DeleteBatch(ctx context.Context, keys []string) (BatchResult, error)
}
