package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/northlight-av/vitrine/internal/content"
	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/display"
	"github.com/northlight-av/vitrine/internal/http/api"
	adminapi "github.com/northlight-av/vitrine/internal/http/api/admin/endpoints"
	tvapi "github.com/northlight-av/vitrine/internal/http/api/tv/endpoints"
	"github.com/northlight-av/vitrine/internal/media"
	"github.com/northlight-av/vitrine/internal/pairing"
	"github.com/northlight-av/vitrine/internal/settings"
	"github.com/northlight-av/vitrine/internal/storage"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	assets storage.Storage,
	settingsSvc *settings.Service,
	issuer *pairing.Issuer,
) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	normalizer := media.NewPassthrough(assets)
	lifecycle := content.NewLifecycle(store, assets)
	assignments := content.NewAssignments(store)
	resolver := display.NewResolver(store, settingsSvc)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.MediaModule(store, assets, normalizer, lifecycle),
		adminapi.ScreenModule(store, assignments, issuer, normalizer, assets),
		adminapi.SettingsModule(settingsSvc),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		tvapi.DisplayModule(resolver),
		tvapi.PairingModule(issuer),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
