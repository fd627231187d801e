package endpoints

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-av/vitrine/internal/content"
	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/http/api"
	"github.com/northlight-av/vitrine/internal/media"
	"github.com/northlight-av/vitrine/internal/model"
	"github.com/northlight-av/vitrine/internal/pairing"
	"github.com/northlight-av/vitrine/internal/settings"
)

type nullStorage struct{}

func (nullStorage) SaveFile(_ *multipart.FileHeader, filename string) (string, error) {
	return filename, nil
}

func (nullStorage) DeleteFile(string) error { return nil }

// setupRouter mounts the admin modules without auth; the JWT
// middleware is exercised separately.
func setupRouter(store db.Store, svc *settings.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	assets := nullStorage{}
	normalizer := media.NewPassthrough(assets)
	lifecycle := content.NewLifecycle(store, assets)
	assignments := content.NewAssignments(store)
	issuer := pairing.NewIssuer(store, nil)

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"},
		MediaModule(store, assets, normalizer, lifecycle),
		ScreenModule(store, assignments, issuer, normalizer, assets),
		SettingsModule(svc),
	)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndUpdateScreen(t *testing.T) {
	store := db.NewMemStore()
	router := setupRouter(store, settings.NewService(store))

	w := doJSON(t, router, http.MethodPost, "/api/admin/screens", gin.H{"name": "lobby"})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		ID          int    `json:"id"`
		PublicID    string `json:"public_id"`
		PairingCode string `json:"pairing_code"`
		DisplayMode string `json:"display_mode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.PublicID)
	assert.Len(t, created.PairingCode, 6)
	assert.Equal(t, "media", created.DisplayMode)

	t.Run("missing name is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/admin/screens", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/screens/"+itoa(created.ID),
			gin.H{"display_mode": "redirect", "redirect_url": "https://example.org"})
		require.Equal(t, http.StatusOK, w.Code)

		screen, err := store.GetScreenByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.DisplayModeRedirect, screen.DisplayMode)
		assert.Equal(t, "lobby", screen.Name)
	})

	t.Run("invalid display mode is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/screens/"+itoa(created.ID),
			gin.H{"display_mode": "marquee"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssignContentEndpoint(t *testing.T) {
	store := db.NewMemStore()
	router := setupRouter(store, settings.NewService(store))

	screen, err := store.CreateScreen("lobby", nil, nil, "pub", "ABC123")
	require.NoError(t, err)
	a, err := store.CreateMedia("a.jpg", "a.jpg", model.MediaKindImage, 4000, 0, false)
	require.NoError(t, err)
	b, err := store.CreateMedia("b.jpg", "b.jpg", model.MediaKindImage, 4000, 0, false)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost,
		"/api/admin/screens/"+itoa(screen.ID)+"/content",
		gin.H{"media_ids": []int{b.ID, a.ID}})
	require.Equal(t, http.StatusOK, w.Code)

	assigned, err := store.ListScreenMedia(screen.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 2)
	assert.Equal(t, b.ID, assigned[0].MediaID)

	t.Run("unknown screen is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost,
			"/api/admin/screens/999/content", gin.H{"media_ids": []int{a.ID}})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("association duration override", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/screens/"+itoa(screen.ID)+"/content/"+itoa(a.ID)+"/duration",
			gin.H{"duration": 3000})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Duration int `json:"duration"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3000, resp.Duration)
	})

	t.Run("clearing reverts to the default", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/screens/"+itoa(screen.ID)+"/content/"+itoa(a.ID)+"/duration",
			gin.H{})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Duration int `json:"duration"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 4000, resp.Duration)
	})

	t.Run("missing association is 404", func(t *testing.T) {
		c, err := store.CreateMedia("c.jpg", "c.jpg", model.MediaKindImage, 4000, 0, false)
		require.NoError(t, err)
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/screens/"+itoa(screen.ID)+"/content/"+itoa(c.ID)+"/duration",
			gin.H{"duration": 3000})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMediaExpiryEndpoints(t *testing.T) {
	store := db.NewMemStore()
	router := setupRouter(store, settings.NewService(store))

	item, err := store.CreateMedia("a.jpg", "a.jpg", model.MediaKindImage, 4000, 0, true)
	require.NoError(t, err)

	t.Run("malformed timestamp is rejected without touching state", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/media/"+itoa(item.ID)+"/expiry",
			gin.H{"expire_at": "tomorrow-ish"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		got, err := store.GetMediaByID(item.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ExpireAt)
	})

	t.Run("set expiry then reap", func(t *testing.T) {
		past := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/media/"+itoa(item.ID)+"/expiry",
			gin.H{"expire_at": past, "auto_delete": false})
		require.Equal(t, http.StatusOK, w.Code)

		var expiry struct {
			IsExpired bool `json:"is_expired"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &expiry))
		assert.True(t, expiry.IsExpired)

		w = doJSON(t, router, http.MethodPost, "/api/admin/media/reap", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var reap struct {
			Retired int `json:"retired"`
			Deleted int `json:"deleted"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reap))
		assert.Equal(t, 1, reap.Retired)
		assert.Equal(t, 0, reap.Deleted)

		got, err := store.GetMediaByID(item.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)
	})

	t.Run("zero duration is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/media/"+itoa(item.ID)+"/duration",
			gin.H{"duration": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric id is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut,
			"/api/admin/media/abc/duration", gin.H{"duration": 1000})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSettingsEndpoint(t *testing.T) {
	store := db.NewMemStore()
	svc := settings.NewService(store)
	router := setupRouter(store, svc)

	w := doJSON(t, router, http.MethodPut, "/api/admin/settings", gin.H{
		"settings": gin.H{
			"site_title":       "Lobby Signage",
			"redirect_enabled": "True",
			"redirect_url":     "https://example.org",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	enabled, err := svc.Bool(settings.KeyRedirectEnabled)
	require.NoError(t, err)
	assert.True(t, enabled)

	// checkbox semantics: a save without the key turns the override off
	w = doJSON(t, router, http.MethodPut, "/api/admin/settings", gin.H{
		"settings": gin.H{"site_title": "Lobby Signage"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	enabled, err = svc.Bool(settings.KeyRedirectEnabled)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func itoa(id int) string { return strconv.Itoa(id) }
