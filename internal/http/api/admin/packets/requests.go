package packets

// REQUESTS FOR /api/admin/media/*

type UpdateDurationRequest struct {
	Duration int `json:"duration" binding:"required,gt=0"`
}

// ExpireAt arrives as an ISO-8601 string (or null to clear) so the
// boundary can reject malformed timestamps without touching state.
type UpdateExpiryRequest struct {
	ExpireAt   *string `json:"expire_at"`
	AutoDelete bool    `json:"auto_delete"`
}

type ReorderRequest struct {
	Order []int `json:"order" binding:"required"`
}

// REQUESTS FOR /api/admin/screens/*

type CreateScreenRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

type UpdateScreenRequest struct {
	Name                  *string `json:"name"`
	Description           *string `json:"description"`
	Location              *string `json:"location"`
	DisplayMode           *string `json:"display_mode" binding:"omitempty,oneof=media redirect iframe json_api"`
	RedirectURL           *string `json:"redirect_url"`
	IframeURL             *string `json:"iframe_url"`
	IframeMarginLeft      *int    `json:"iframe_margin_left" binding:"omitempty,gte=0"`
	IframeMarginRight     *int    `json:"iframe_margin_right" binding:"omitempty,gte=0"`
	JSONAPIURL            *string `json:"json_api_url"`
	JSONAPITemplate       *string `json:"json_api_template"`
	LegacyRedirectEnabled *bool   `json:"legacy_redirect_enabled"`
	LegacyRedirectURL     *string `json:"legacy_redirect_url"`
	CarouselEnabled       *bool   `json:"carousel_enabled"`
	CarouselSpeed         *string `json:"carousel_speed" binding:"omitempty,oneof=slow normal fast"`
}

type AssignContentRequest struct {
	MediaIDs []int `json:"media_ids"`
}

type AssocDurationRequest struct {
	// nil clears the override, reverting to the media item's default
	Duration *int `json:"duration" binding:"omitempty,gt=0"`
}

// REQUESTS FOR /api/admin/settings

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
