package metadata

import (
	"io"

	"github.com/sefazor/photomap-backend/internal/models"
)

// Extractor pulls catalog metadata out of a photo. A photo that simply lacks
// a field (no GPS block, no capture date) yields absent fields, not an error;
// errors are reserved for I/O failures.
type Extractor interface {
	Extract(r io.Reader, filename string) (models.PhotoMetadata, error)
}
