package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/pairing"
	redisclient "github.com/northlight-av/vitrine/internal/redis"
	"github.com/northlight-av/vitrine/internal/settings"
)

// defaultSettings seeds the flat configuration namespace on first run.
// The boolean keys use the literal "True"/"False" encoding older
// installs expect.
var defaultSettings = map[string]string{
	"site_title":             "Vitrine",
	"default_image_duration": "5000",
	"transition_effect":      "fade",
	"auto_refresh":           "21600000",
	"redirect_enabled":       "False",
	"redirect_url":           "",
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	env := LoadEnvironment()

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	if env.RedisAddress != "" {
		redisclient.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	store := db.NewStore(nil)
	assets := InitStorage(env)

	settingsSvc := settings.NewService(store)
	if err := settingsSvc.EnsureDefaults(defaultSettings); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default settings")
	}

	issuer := pairing.NewIssuer(store, redisclient.Rdb)

	r := gin.Default()
	RegisterRoutes(r, env, store, assets, settingsSvc, issuer)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
