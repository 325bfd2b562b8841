package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestUniqueHash(t *testing.T) {
	tests := []struct {
		name     string
		assetID  string
		filename string
		want     string
	}{
		{"both present", "asset-1", "IMG_0042.jpg", "asset-1_IMG_0042"},
		{"extension stripped only once", "asset-1", "trip.photo.heic", "asset-1_trip.photo"},
		{"no extension", "asset-1", "IMG_0042", "asset-1_IMG_0042"},
		{"missing asset id", "", "IMG_0042.jpg", ""},
		{"missing filename", "asset-1", "", ""},
		{"both missing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := PhotoMetadata{AssetID: tt.assetID, Filename: tt.filename}
			assert.Equal(t, tt.want, meta.UniqueHash())
		})
	}
}

func TestHasLocation(t *testing.T) {
	assert.False(t, PhotoMetadata{}.HasLocation())
	assert.False(t, PhotoMetadata{Latitude: floatPtr(48.2)}.HasLocation())
	assert.False(t, PhotoMetadata{Longitude: floatPtr(16.4)}.HasLocation())
	assert.True(t, PhotoMetadata{Latitude: floatPtr(48.2), Longitude: floatPtr(16.4)}.HasLocation())
}
