package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/northlight-av/vitrine/internal/http/api"
	"github.com/northlight-av/vitrine/internal/http/api/admin/packets"
	"github.com/northlight-av/vitrine/internal/settings"
)

type SettingsController struct {
	settings *settings.Service
}

// SettingsModule mounts the authenticated /settings endpoints.
func SettingsModule(svc *settings.Service) api.Module {
	ctl := &SettingsController{settings: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings", ctl.listSettings)
		c.PUT("/settings", ctl.updateSettings)
	})
}

// GET /api/admin/settings
func (s *SettingsController) listSettings(ctx *gin.Context) (any, *api.APIError) {
	all, err := s.settings.All()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list settings"}
	}

	out := make([]packets.SettingResponse, 0, len(all))
	for _, setting := range all {
		out = append(out, packets.SettingResponse{
			Key:       setting.Key,
			Value:     setting.Value,
			UpdatedAt: setting.UpdatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// PUT /api/admin/settings
// Bulk upsert. redirect_enabled behaves like the old dashboard
// checkbox: omitting it from the request turns the override off.
func (s *SettingsController) updateSettings(ctx *gin.Context) (any, *api.APIError) {
	var request packets.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, present := request.Settings[settings.KeyRedirectEnabled]; !present {
		if err := s.settings.SetBool(settings.KeyRedirectEnabled, false); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update settings"}
		}
	}

	for key, value := range request.Settings {
		if key == settings.KeyRedirectEnabled {
			if err := s.settings.SetBool(key, value == "True" || value == "true"); err != nil {
				return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update settings"}
			}
			continue
		}
		if err := s.settings.Set(key, value); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update settings"}
		}
	}
	return gin.H{"success": true}, nil
}
