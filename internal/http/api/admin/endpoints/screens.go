package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/content"
	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/http/api"
	"github.com/northlight-av/vitrine/internal/http/api/admin/packets"
	"github.com/northlight-av/vitrine/internal/media"
	"github.com/northlight-av/vitrine/internal/model"
	"github.com/northlight-av/vitrine/internal/pairing"
	"github.com/northlight-av/vitrine/internal/storage"
)

type ScreenController struct {
	store       db.Store
	assignments *content.Assignments
	issuer      *pairing.Issuer
	normalizer  media.Normalizer
	assets      storage.Storage
}

func newScreenController(
	store db.Store,
	assignments *content.Assignments,
	issuer *pairing.Issuer,
	normalizer media.Normalizer,
	assets storage.Storage,
) *ScreenController {
	return &ScreenController{
		store:       store,
		assignments: assignments,
		issuer:      issuer,
		normalizer:  normalizer,
		assets:      assets,
	}
}

// ScreenModule mounts all authenticated /screens endpoints.
func ScreenModule(
	store db.Store,
	assignments *content.Assignments,
	issuer *pairing.Issuer,
	normalizer media.Normalizer,
	assets storage.Storage,
) api.Module {
	ctl := newScreenController(store, assignments, issuer, normalizer, assets)
	return api.ModuleFunc(func(c *api.Controller) {
		// CRUD
		c.GET("/screens", ctl.listScreens)
		c.POST("/screens", ctl.createScreen)
		c.GET("/screens/:id", ctl.getScreen)
		c.PUT("/screens/:id", ctl.updateScreen)
		c.DELETE("/screens/:id", ctl.deleteScreen)
		c.POST("/screens/:id/toggle", ctl.toggleScreen)

		// screen <-> content
		c.GET("/screens/:id/content", ctl.listScreenContent)
		c.POST("/screens/:id/content", ctl.assignContent)
		c.PUT("/screens/:id/content/:media_id/duration", ctl.setAssocDuration)
		c.POST("/screens/:id/upload", ctl.uploadScreenMedia)

		// sponsor carousel
		c.GET("/screens/:id/sponsors", ctl.listSponsors)
		c.POST("/screens/:id/sponsors", ctl.addSponsor)
		c.DELETE("/screens/:id/sponsors/:sponsor_id", ctl.deleteSponsor)
	})
}

// GET /api/admin/screens
func (t *ScreenController) listScreens(ctx *gin.Context) (any, *api.APIError) {
	all, err := t.store.ListScreens()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list screens"}
	}

	out := make([]packets.ScreenResponse, 0, len(all))
	for _, s := range all {
		out = append(out, screenResponse(s))
	}
	return out, nil
}

// POST /api/admin/screens
// A fresh screen gets its opaque public identifier and a unique
// pairing code at creation time.
func (t *ScreenController) createScreen(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	code, err := t.issuer.Issue()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not issue pairing code"}
	}

	screen, err := t.store.CreateScreen(
		request.Name, request.Description, request.Location,
		uuid.NewString(), code,
	)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}
	return screenResponse(screen), nil
}

// GET /api/admin/screens/:id
func (t *ScreenController) getScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	return screenResponse(screen), nil
}

// PUT /api/admin/screens/:id
func (t *ScreenController) updateScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	if _, err := t.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	var request packets.UpdateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	err := t.store.UpdateScreen(id, db.UpdateScreenParams{
		Name:                  request.Name,
		Description:           request.Description,
		Location:              request.Location,
		DisplayMode:           request.DisplayMode,
		RedirectURL:           request.RedirectURL,
		IframeURL:             request.IframeURL,
		IframeMarginLeft:      request.IframeMarginLeft,
		IframeMarginRight:     request.IframeMarginRight,
		JSONAPIURL:            request.JSONAPIURL,
		JSONAPITemplate:       request.JSONAPITemplate,
		LegacyRedirectEnabled: request.LegacyRedirectEnabled,
		LegacyRedirectURL:     request.LegacyRedirectURL,
		CarouselEnabled:       request.CarouselEnabled,
		CarouselSpeed:         request.CarouselSpeed,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update screen"}
	}

	updated, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load screen"}
	}
	return screenResponse(updated), nil
}

// DELETE /api/admin/screens/:id
// Sponsor assets are cleaned up best-effort before the row (and its
// cascading associations) goes.
func (t *ScreenController) deleteScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	if _, err := t.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	sponsors, err := t.store.ListScreenSponsors(id)
	if err == nil {
		for _, sp := range sponsors {
			if err := t.assets.DeleteFile(sp.Filename); err != nil {
				log.Error().Err(err).Str("filename", sp.Filename).Msg("failed to delete sponsor asset")
			}
		}
	}

	if err := t.store.DeleteScreen(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete screen"}
	}
	return gin.H{"success": true}, nil
}

// POST /api/admin/screens/:id/toggle
func (t *ScreenController) toggleScreen(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if err := t.store.SetScreenActive(id, !screen.Active); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not toggle screen"}
	}
	return packets.ToggleResponse{Active: !screen.Active}, nil
}

// GET /api/admin/screens/:id/content
func (t *ScreenController) listScreenContent(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	if _, err := t.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	items, err := t.store.ListScreenMedia(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list screen content"}
	}

	out := make([]packets.AssociationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, packets.AssociationResponse{
			MediaID:  item.MediaID,
			Position: item.Position,
			Kind:     item.Kind,
			Filename: item.Filename,
			Duration: item.Duration,
			Default:  item.DefaultDuration,
			Active:   item.Active,
		})
	}
	return out, nil
}

// POST /api/admin/screens/:id/content
// Replaces the screen's assignment set wholesale; order is the request
// order. Unknown media IDs are skipped, matching older installs.
func (t *ScreenController) assignContent(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AssignContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := t.assignments.Assign(id, request.MediaIDs); err != nil {
		if errors.Is(err, content.ErrScreenNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not assign content"}
	}
	return gin.H{"success": true}, nil
}

// PUT /api/admin/screens/:id/content/:media_id/duration
func (t *ScreenController) setAssocDuration(ctx *gin.Context) (any, *api.APIError) {
	screenID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	mediaID, apiErr := pathID(ctx, "media_id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AssocDurationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	effective, err := t.assignments.SetDuration(screenID, mediaID, request.Duration)
	if err != nil {
		if errors.Is(err, content.ErrAssociationNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "association not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not set duration"}
	}
	return packets.AssocDurationResponse{MediaID: mediaID, Duration: effective}, nil
}

// POST /api/admin/screens/:id/upload
// Screen-scoped ingestion: the item is created non-global and appended
// after the screen's current assignments.
func (t *ScreenController) uploadScreenMedia(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	if _, err := t.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "no file provided"}
	}
	files := form.File["file"]
	if len(files) == 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "no file provided"}
	}

	count, err := t.store.CountMedia()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not count media"}
	}

	out := make([]packets.MediaResponse, 0, len(files))
	for _, fileHeader := range files {
		asset, err := t.normalizer.Normalize(fileHeader)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}

		item, err := t.store.CreateMedia(
			asset.Ref, fileHeader.Filename, asset.Kind, asset.Duration, count, false,
		)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create media"}
		}
		count++

		if err := t.assignments.AppendUploaded(id, item.ID); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not link media to screen"}
		}
		out = append(out, mediaResponse(item))
	}
	return out, nil
}

// GET /api/admin/screens/:id/sponsors
func (t *ScreenController) listSponsors(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	if _, err := t.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	sponsors, err := t.store.ListScreenSponsors(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list sponsors"}
	}

	out := make([]packets.SponsorResponse, 0, len(sponsors))
	for _, sp := range sponsors {
		out = append(out, packets.SponsorResponse{ID: sp.ID, Filename: sp.Filename, Position: sp.Position})
	}
	return out, nil
}

// POST /api/admin/screens/:id/sponsors
func (t *ScreenController) addSponsor(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	if _, err := t.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "no file provided"}
	}

	ref, err := t.assets.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store sponsor asset"}
	}

	sponsor, err := t.store.AddScreenSponsor(id, ref)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not add sponsor"}
	}
	return packets.SponsorResponse{ID: sponsor.ID, Filename: sponsor.Filename, Position: sponsor.Position}, nil
}

// DELETE /api/admin/screens/:id/sponsors/:sponsor_id
func (t *ScreenController) deleteSponsor(ctx *gin.Context) (any, *api.APIError) {
	screenID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	sponsorID, apiErr := pathID(ctx, "sponsor_id")
	if apiErr != nil {
		return nil, apiErr
	}

	if err := t.store.DeleteScreenSponsor(screenID, sponsorID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete sponsor"}
	}
	return gin.H{"success": true}, nil
}

func screenResponse(s model.Screen) packets.ScreenResponse {
	return packets.ScreenResponse{
		ID:                    s.ID,
		PublicID:              s.PublicID,
		Name:                  s.Name,
		Description:           s.Description,
		Location:              s.Location,
		Active:                s.Active,
		PairingCode:           s.PairingCode,
		DisplayMode:           s.DisplayMode,
		RedirectURL:           s.RedirectURL,
		IframeURL:             s.IframeURL,
		IframeMarginLeft:      s.IframeMarginLeft,
		IframeMarginRight:     s.IframeMarginRight,
		JSONAPIURL:            s.JSONAPIURL,
		JSONAPITemplate:       s.JSONAPITemplate,
		LegacyRedirectEnabled: s.LegacyRedirectEnabled,
		LegacyRedirectURL:     s.LegacyRedirectURL,
		CarouselEnabled:       s.CarouselEnabled,
		CarouselSpeed:         s.CarouselSpeed,
		CreatedAt:             s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             s.UpdatedAt.Format(time.RFC3339),
	}
}
