package packets

// RESPONSES FOR /api/admin/*

// MediaResponse mirrors model.MediaItem but flattens times to RFC3339.
type MediaResponse struct {
	ID               int     `json:"id"`
	Filename         string  `json:"filename"`
	OriginalFilename string  `json:"original_filename"`
	Kind             string  `json:"kind"`
	Duration         int     `json:"duration"`
	Active           bool    `json:"active"`
	OrderIndex       int     `json:"order_index"`
	IsGlobal         bool    `json:"is_global"`
	ExpireAt         *string `json:"expire_at"`
	AutoDelete       bool    `json:"auto_delete"`
	CreatedAt        string  `json:"created_at"`
}

type ScreenResponse struct {
	ID                    int     `json:"id"`
	PublicID              string  `json:"public_id"`
	Name                  string  `json:"name"`
	Description           *string `json:"description"`
	Location              *string `json:"location"`
	Active                bool    `json:"active"`
	PairingCode           string  `json:"pairing_code"`
	DisplayMode           string  `json:"display_mode"`
	RedirectURL           *string `json:"redirect_url"`
	IframeURL             *string `json:"iframe_url"`
	IframeMarginLeft      int     `json:"iframe_margin_left"`
	IframeMarginRight     int     `json:"iframe_margin_right"`
	JSONAPIURL            *string `json:"json_api_url"`
	JSONAPITemplate       *string `json:"json_api_template"`
	LegacyRedirectEnabled bool    `json:"legacy_redirect_enabled"`
	LegacyRedirectURL     *string `json:"legacy_redirect_url"`
	CarouselEnabled       bool    `json:"carousel_enabled"`
	CarouselSpeed         string  `json:"carousel_speed"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

type AssociationResponse struct {
	MediaID  int    `json:"media_id"`
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	Filename string `json:"filename"`
	Duration *int   `json:"duration"`
	Default  int    `json:"default_duration"`
	Active   bool   `json:"active"`
}

type AssocDurationResponse struct {
	MediaID  int `json:"media_id"`
	Duration int `json:"duration"`
}

type ExpiryResponse struct {
	ExpireAt   *string `json:"expire_at"`
	AutoDelete bool    `json:"auto_delete"`
	IsExpired  bool    `json:"is_expired"`
}

type ReapResponse struct {
	Retired int `json:"retired"`
	Deleted int `json:"deleted"`
}

type SettingResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}

type SponsorResponse struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
	Position int    `json:"position"`
}

type ToggleResponse struct {
	Active bool `json:"active"`
}
