package model

import "time"

// Setting is one entry in the flat global configuration namespace.
// Values are uninterpreted strings; boolean keys hold the literal
// "True"/"False" for compatibility with older installs.
type Setting struct {
	ID        int       `db:"id"         json:"id"`
	Key       string    `db:"key"        json:"key"`
	Value     string    `db:"value"      json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
