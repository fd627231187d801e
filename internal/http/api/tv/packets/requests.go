package packets

// REQUESTS FOR /api/tv/screens/pair
type PairRequest struct {
	Code string `json:"code" binding:"required"`
}
