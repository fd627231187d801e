package model

import "time"

// Display modes a screen can be configured with. The legacy redirect
// flag on the screen supersedes all of them when set.
const (
	DisplayModeMedia    = "media"
	DisplayModeRedirect = "redirect"
	DisplayModeIframe   = "iframe"
	DisplayModeJSONAPI  = "json_api"
)

// Screen represents a physical display device in the system.
// PublicID is the opaque token used in external URLs; the numeric ID
// never leaves the admin API.
type Screen struct {
	ID          int     `db:"id"           json:"id"`
	PublicID    string  `db:"public_id"    json:"public_id"`
	Name        string  `db:"name"         json:"name"`
	Description *string `db:"description"  json:"description,omitempty"`
	Location    *string `db:"location"     json:"location,omitempty"`
	Active      bool    `db:"active"       json:"active"`
	PairingCode string  `db:"pairing_code" json:"pairing_code"`

	DisplayMode       string  `db:"display_mode"        json:"display_mode"`
	RedirectURL       *string `db:"redirect_url"        json:"redirect_url,omitempty"`
	IframeURL         *string `db:"iframe_url"          json:"iframe_url,omitempty"`
	IframeMarginLeft  int     `db:"iframe_margin_left"  json:"iframe_margin_left"`
	IframeMarginRight int     `db:"iframe_margin_right" json:"iframe_margin_right"`
	JSONAPIURL        *string `db:"json_api_url"        json:"json_api_url,omitempty"`
	JSONAPITemplate   *string `db:"json_api_template"   json:"json_api_template,omitempty"`

	// Pre-mode redirect toggle, kept for screens configured before
	// display modes existed. Wins over DisplayMode when set.
	LegacyRedirectEnabled bool    `db:"legacy_redirect_enabled" json:"legacy_redirect_enabled"`
	LegacyRedirectURL     *string `db:"legacy_redirect_url"     json:"legacy_redirect_url,omitempty"`

	CarouselEnabled bool   `db:"carousel_enabled" json:"carousel_enabled"`
	CarouselSpeed   string `db:"carousel_speed"   json:"carousel_speed"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Sponsor is a per-screen logo asset shown in the json_api carousel,
// ordered by Position within its screen.
type Sponsor struct {
	ID        int       `db:"id"         json:"id"`
	ScreenID  int       `db:"screen_id"  json:"screen_id"`
	Filename  string    `db:"filename"   json:"filename"`
	Position  int       `db:"position"   json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
