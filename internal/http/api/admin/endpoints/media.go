package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/content"
	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/http/api"
	"github.com/northlight-av/vitrine/internal/http/api/admin/packets"
	"github.com/northlight-av/vitrine/internal/media"
	"github.com/northlight-av/vitrine/internal/model"
	"github.com/northlight-av/vitrine/internal/storage"
)

type MediaController struct {
	store      db.Store
	assets     storage.Storage
	normalizer media.Normalizer
	lifecycle  *content.Lifecycle
}

func newMediaController(
	store db.Store,
	assets storage.Storage,
	normalizer media.Normalizer,
	lifecycle *content.Lifecycle,
) *MediaController {
	return &MediaController{store: store, assets: assets, normalizer: normalizer, lifecycle: lifecycle}
}

// MediaModule mounts all authenticated /media endpoints.
func MediaModule(
	store db.Store,
	assets storage.Storage,
	normalizer media.Normalizer,
	lifecycle *content.Lifecycle,
) api.Module {
	ctl := newMediaController(store, assets, normalizer, lifecycle)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/media", ctl.listMedia)
		c.POST("/media", ctl.uploadMedia)
		c.POST("/media/reap", ctl.reapExpired)
		c.POST("/media/reorder", ctl.reorderMedia)

		c.PUT("/media/:id/duration", ctl.updateDuration)
		c.PUT("/media/:id/expiry", ctl.updateExpiry)
		c.GET("/media/:id/expiry", ctl.expiryStatus)
		c.POST("/media/:id/toggle", ctl.toggleMedia)
		c.DELETE("/media/:id", ctl.deleteMedia)
	})
}

// GET /api/admin/media
func (m *MediaController) listMedia(ctx *gin.Context) (any, *api.APIError) {
	all, err := m.store.ListMedia()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list media"}
	}

	out := make([]packets.MediaResponse, 0, len(all))
	for _, item := range all {
		out = append(out, mediaResponse(item))
	}
	return out, nil
}

// POST /api/admin/media
// Multipart upload into the global library; the normalizer produces
// the playable asset plus kind and duration.
func (m *MediaController) uploadMedia(ctx *gin.Context) (any, *api.APIError) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "no file provided"}
	}
	files := form.File["file"]
	if len(files) == 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "no file provided"}
	}

	count, err := m.store.CountMedia()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not count media"}
	}

	out := make([]packets.MediaResponse, 0, len(files))
	for _, fileHeader := range files {
		asset, err := m.normalizer.Normalize(fileHeader)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}

		item, err := m.store.CreateMedia(
			asset.Ref, fileHeader.Filename, asset.Kind, asset.Duration, count, true,
		)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create media"}
		}
		count++
		out = append(out, mediaResponse(item))
	}
	return out, nil
}

// POST /api/admin/media/reap
func (m *MediaController) reapExpired(ctx *gin.Context) (any, *api.APIError) {
	result, err := m.lifecycle.ReapExpired(time.Now().UTC())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "reap failed"}
	}
	return packets.ReapResponse{Retired: result.Retired, Deleted: result.Deleted}, nil
}

// POST /api/admin/media/reorder
func (m *MediaController) reorderMedia(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ReorderRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := m.store.ReorderMedia(request.Order); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reorder media"}
	}
	return gin.H{"success": true}, nil
}

// PUT /api/admin/media/:id/duration
func (m *MediaController) updateDuration(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateDurationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := m.store.GetMediaByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "media not found"}
	}
	if err := m.store.UpdateMediaDuration(id, request.Duration); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update duration"}
	}
	return gin.H{"success": true}, nil
}

// PUT /api/admin/media/:id/expiry
// Malformed timestamps are rejected here; stored state stays untouched.
func (m *MediaController) updateExpiry(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateExpiryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var expireAt *time.Time
	if request.ExpireAt != nil && *request.ExpireAt != "" {
		parsed, err := time.Parse(time.RFC3339, *request.ExpireAt)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid expire_at format"}
		}
		utc := parsed.UTC()
		expireAt = &utc
	}

	if _, err := m.store.GetMediaByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "media not found"}
	}
	if err := m.store.UpdateMediaExpiry(id, expireAt, request.AutoDelete); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update expiry"}
	}

	return expiryResponse(expireAt, request.AutoDelete, time.Now().UTC()), nil
}

// GET /api/admin/media/:id/expiry
func (m *MediaController) expiryStatus(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	item, err := m.store.GetMediaByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "media not found"}
	}
	return expiryResponse(item.ExpireAt, item.AutoDelete, time.Now().UTC()), nil
}

// POST /api/admin/media/:id/toggle
func (m *MediaController) toggleMedia(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	item, err := m.store.GetMediaByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "media not found"}
	}
	if err := m.store.SetMediaActive(id, !item.Active); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not toggle media"}
	}
	return packets.ToggleResponse{Active: !item.Active}, nil
}

// DELETE /api/admin/media/:id
func (m *MediaController) deleteMedia(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	item, err := m.store.GetMediaByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "media not found"}
	}

	// asset removal is best-effort, the record goes either way
	if err := m.assets.DeleteFile(item.Filename); err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("failed to delete asset file")
	}
	if _, err := m.store.DeleteMedia(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete media"}
	}
	return gin.H{"success": true}, nil
}

func pathID(ctx *gin.Context, name string) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		log.Error().Err(err).Str("id_raw", ctx.Param(name)).Msg("invalid id in request")
		return 0, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	return id, nil
}

func mediaResponse(item model.MediaItem) packets.MediaResponse {
	var expireAt *string
	if item.ExpireAt != nil {
		v := item.ExpireAt.Format(time.RFC3339)
		expireAt = &v
	}
	return packets.MediaResponse{
		ID:               item.ID,
		Filename:         item.Filename,
		OriginalFilename: item.OriginalFilename,
		Kind:             item.Kind,
		Duration:         item.Duration,
		Active:           item.Active,
		OrderIndex:       item.OrderIndex,
		IsGlobal:         item.IsGlobal,
		ExpireAt:         expireAt,
		AutoDelete:       item.AutoDelete,
		CreatedAt:        item.CreatedAt.Format(time.RFC3339),
	}
}

func expiryResponse(expireAt *time.Time, autoDelete bool, now time.Time) packets.ExpiryResponse {
	resp := packets.ExpiryResponse{AutoDelete: autoDelete}
	if expireAt != nil {
		v := expireAt.Format(time.RFC3339)
		resp.ExpireAt = &v
		resp.IsExpired = !expireAt.After(now)
	}
	return resp
}
