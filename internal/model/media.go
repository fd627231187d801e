package model

import "time"

// Media kinds produced by the ingestion normalizer.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// MediaItem is one playable asset in the shared content library.
// Active and ExpireAt are independent: an item can be inactive with no
// expiry, or carry an expiry while still active.
type MediaItem struct {
	ID               int        `db:"id"                json:"id"`
	Filename         string     `db:"filename"          json:"filename"`
	OriginalFilename string     `db:"original_filename" json:"original_filename"`
	Kind             string     `db:"kind"              json:"kind"`
	Duration         int        `db:"duration"          json:"duration"`
	Active           bool       `db:"active"            json:"active"`
	OrderIndex       int        `db:"order_index"       json:"order_index"`
	IsGlobal         bool       `db:"is_global"         json:"is_global"`
	ExpireAt         *time.Time `db:"expire_at"         json:"expire_at,omitempty"`
	AutoDelete       bool       `db:"auto_delete"       json:"auto_delete"`
	CreatedAt        time.Time  `db:"created_at"        json:"created_at"`
}

// Expired reports whether the item's validity window has elapsed at now.
func (m MediaItem) Expired(now time.Time) bool {
	return m.ExpireAt != nil && !m.ExpireAt.After(now)
}
