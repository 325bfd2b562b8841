package models

import "time"

// PublicPhotoPoint is the projection written to the shared public store. The
// remote record is keyed by UniqueHash and owned by the publishing user.
type PublicPhotoPoint struct {
	Username    string     `json:"username"`
	UniqueHash  string     `json:"unique_hash"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	CaptureDate *time.Time `json:"capture_date,omitempty"`
}
