package packets

// RESPONSES FOR /api/tv/*

type PairResponse struct {
	ScreenID string `json:"screen_id"`
}
