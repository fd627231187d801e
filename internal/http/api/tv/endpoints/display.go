package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northlight-av/vitrine/internal/display"
	"github.com/northlight-av/vitrine/internal/http/api"
)

type DisplayController struct {
	resolver *display.Resolver
}

// DisplayModule mounts the unauthenticated display poll endpoint.
func DisplayModule(resolver *display.Resolver) api.Module {
	ctl := &DisplayController{resolver: resolver}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens/:public_id/display", ctl.resolveScreen)
	})
}

// GET /api/tv/screens/:public_id/display
// The only hard failure is an unknown screen; anything after that
// degrades inside the resolver rather than blanking the display.
func (d *DisplayController) resolveScreen(ctx *gin.Context) (any, *api.APIError) {
	resolution, err := d.resolver.Resolve(ctx.Request.Context(), ctx.Param("public_id"))
	if err != nil {
		if errors.Is(err, display.ErrScreenNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not resolve screen"}
	}
	return resolution, nil
}
