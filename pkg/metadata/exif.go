package metadata

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/sefazor/photomap-backend/internal/models"
)

// ExifExtractor reads GPS coordinates, the capture timestamp and the
// ImageUniqueID tag from a photo's EXIF block.
type ExifExtractor struct{}

func NewExifExtractor() *ExifExtractor {
	return &ExifExtractor{}
}

func (e *ExifExtractor) Extract(r io.Reader, filename string) (models.PhotoMetadata, error) {
	meta := models.PhotoMetadata{Filename: filename}

	// Buffer the photo first: a failing reader is an I/O error, a photo that
	// merely lacks an EXIF block is not.
	data, err := io.ReadAll(r)
	if err != nil {
		return models.PhotoMetadata{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		// No usable EXIF block. The photo is still importable, it just has no
		// location and gets filtered downstream.
		return meta, nil
	}

	if lat, long, err := x.LatLong(); err == nil {
		meta.Latitude = &lat
		meta.Longitude = &long
	}

	if dt, err := x.DateTime(); err == nil {
		meta.CaptureDate = &dt
	}

	if tag, err := x.Get(exif.ImageUniqueID); err == nil {
		if id, err := tag.StringVal(); err == nil {
			meta.AssetID = id
		}
	}

	return meta, nil
}
