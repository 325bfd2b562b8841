package models

import (
	"path/filepath"
	"strings"
	"time"
)

type PhotoRecord struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	SavedAt     time.Time  `json:"saved_at" gorm:"index;not null"`
	AssetID     string     `json:"asset_id,omitempty"`
	UniqueHash  string     `json:"unique_hash,omitempty" gorm:"index"`
	Latitude    float64    `json:"latitude" gorm:"not null"`
	Longitude   float64    `json:"longitude" gorm:"not null"`
	CaptureDate *time.Time `json:"capture_date,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	IsPublished bool       `json:"is_published" gorm:"default:false"`
}

// PhotoMetadata is what an extractor hands the import pipeline. Coordinates
// are pointers because a photo without geolocation is legitimate input that
// gets filtered, not an error.
type PhotoMetadata struct {
	AssetID     string     `json:"asset_id"`
	Filename    string     `json:"filename"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	CaptureDate *time.Time `json:"capture_date"`
}

func (m PhotoMetadata) HasLocation() bool {
	return m.Latitude != nil && m.Longitude != nil
}

// UniqueHash derives the dedup key: asset id plus the filename stem. If either
// part is missing there is no key and hash dedup is skipped for the item.
func (m PhotoMetadata) UniqueHash() string {
	if m.AssetID == "" || m.Filename == "" {
		return ""
	}
	stem := strings.TrimSuffix(m.Filename, filepath.Ext(m.Filename))
	return m.AssetID + "_" + stem
}
