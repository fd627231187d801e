package model

// Association is the join record binding one media item to one screen,
// with a screen-scoped position and an optional duration override.
type Association struct {
	ScreenID int  `db:"screen_id" json:"screen_id"`
	MediaID  int  `db:"media_id"  json:"media_id"`
	Position int  `db:"position"  json:"position"`
	Duration *int `db:"duration"  json:"duration,omitempty"`
}
