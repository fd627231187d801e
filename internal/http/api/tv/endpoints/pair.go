package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northlight-av/vitrine/internal/http/api"
	"github.com/northlight-av/vitrine/internal/http/api/tv/packets"
	"github.com/northlight-av/vitrine/internal/pairing"
)

type PairingController struct {
	issuer *pairing.Issuer
}

// PairingModule mounts the unauthenticated pairing endpoint devices
// poll while showing their code.
func PairingModule(issuer *pairing.Issuer) api.Module {
	ctl := &PairingController{issuer: issuer}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/screens/pair", ctl.pairByCode)
	})
}

// POST /api/tv/screens/pair
func (p *PairingController) pairByCode(ctx *gin.Context) (any, *api.APIError) {
	var request packets.PairRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	publicID, err := p.issuer.PairByCode(ctx.Request.Context(), request.Code)
	if err != nil {
		if errors.Is(err, pairing.ErrCodeNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "invalid pairing code"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not pair screen"}
	}
	return packets.PairResponse{ScreenID: publicID}, nil
}
