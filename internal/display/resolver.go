// Display resolution: deciding what a screen shows right now.
//
// Resolution is a pure function of the current configuration and the
// content store. The precedence chain is fixed:
//
//	global legacy redirect > screen legacy redirect > redirect mode >
//	iframe mode > json_api mode > media playlist
//
// A configured non-media mode that is missing its URL falls through to
// the media playlist. Nothing in this chain may hard-fail a screen:
// external fetch problems degrade to an empty payload.
package display

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/model"
	"github.com/northlight-av/vitrine/internal/settings"
)

var ErrScreenNotFound = errors.New("screen not found")

// externalFetchTimeout bounds the json_api fetch so one misbehaving
// endpoint cannot stall resolution.
const externalFetchTimeout = 10 * time.Second

// Action tags the resolved behavior a screen should act on.
type Action string

const (
	ActionMedia    Action = "media"
	ActionRedirect Action = "redirect"
	ActionIframe   Action = "iframe"
	ActionJSONAPI  Action = "json_api"
)

// Resolution is the payload for one display poll: exactly one of the
// per-action fields is populated, selected by Action.
type Resolution struct {
	Action     Action `json:"action"`
	ScreenName string `json:"screen_name"`

	Redirect *RedirectSpec `json:"redirect,omitempty"`
	Iframe   *IframeSpec   `json:"iframe,omitempty"`
	JSONAPI  *JSONAPISpec  `json:"json_api,omitempty"`

	// media action
	Inactive bool            `json:"inactive,omitempty"`
	Playlist []PlaylistEntry `json:"playlist"`
}

type RedirectSpec struct {
	URL string `json:"url"`
}

type IframeSpec struct {
	URL         string `json:"url"`
	MarginLeft  int    `json:"margin_left"`
	MarginRight int    `json:"margin_right"`
}

type JSONAPISpec struct {
	Template      string         `json:"template"`
	Items         any            `json:"items"`
	Sponsors      []SponsorEntry `json:"sponsors,omitempty"`
	CarouselSpeed string         `json:"carousel_speed,omitempty"`
}

type SponsorEntry struct {
	Path string `json:"path"`
}

// PlaylistEntry is one item of a media-mode playlist.
type PlaylistEntry struct {
	Kind     string `json:"type"`
	Path     string `json:"path"`
	Duration int    `json:"duration"`
}

type Resolver struct {
	store    db.Store
	settings *settings.Service
	client   *http.Client
}

func NewResolver(store db.Store, svc *settings.Service) *Resolver {
	return &Resolver{
		store:    store,
		settings: svc,
		client:   &http.Client{Timeout: externalFetchTimeout},
	}
}

// Resolve produces the display payload for the screen with the given
// public identifier. The only error it returns is ErrScreenNotFound
// (or a store failure); everything downstream of a found screen
// degrades instead of failing.
func (r *Resolver) Resolve(ctx context.Context, publicID string) (Resolution, error) {
	screen, err := r.store.GetScreenByPublicID(publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resolution{}, ErrScreenNotFound
		}
		log.Error().Err(err).Str("public_id", publicID).Msg("failed to look up screen")
		return Resolution{}, err
	}

	res := Resolution{ScreenName: screen.Name, Playlist: []PlaylistEntry{}}

	// Installation-wide legacy override, checked before anything the
	// screen itself is configured with.
	if url := r.globalRedirectURL(); url != "" {
		res.Action = ActionRedirect
		res.Redirect = &RedirectSpec{URL: url}
		log.Info().Str("screen", screen.Name).Str("url", url).Msg("global redirect override active")
		return res, nil
	}

	if screen.LegacyRedirectEnabled && strPresent(screen.LegacyRedirectURL) {
		res.Action = ActionRedirect
		res.Redirect = &RedirectSpec{URL: *screen.LegacyRedirectURL}
		log.Info().Str("screen", screen.Name).Str("url", *screen.LegacyRedirectURL).Msg("screen redirect active")
		return res, nil
	}

	switch screen.DisplayMode {
	case model.DisplayModeRedirect:
		if strPresent(screen.RedirectURL) {
			res.Action = ActionRedirect
			res.Redirect = &RedirectSpec{URL: *screen.RedirectURL}
			return res, nil
		}
	case model.DisplayModeIframe:
		if strPresent(screen.IframeURL) {
			res.Action = ActionIframe
			res.Iframe = &IframeSpec{
				URL:         *screen.IframeURL,
				MarginLeft:  screen.IframeMarginLeft,
				MarginRight: screen.IframeMarginRight,
			}
			return res, nil
		}
	case model.DisplayModeJSONAPI:
		if strPresent(screen.JSONAPIURL) {
			res.Action = ActionJSONAPI
			res.JSONAPI = r.resolveJSONAPI(ctx, screen)
			return res, nil
		}
	}

	// media mode, or a non-media mode missing its URL
	res.Action = ActionMedia
	if !screen.Active {
		res.Inactive = true
		return res, nil
	}

	playlist, err := r.resolvePlaylist(screen.ID)
	if err != nil {
		return Resolution{}, err
	}
	res.Playlist = playlist
	return res, nil
}

// resolvePlaylist builds the ordered media list: the screen's own
// associations when it has any, otherwise the global library.
func (r *Resolver) resolvePlaylist(screenID int) ([]PlaylistEntry, error) {
	assigned, err := r.store.ListScreenMedia(screenID)
	if err != nil {
		return nil, err
	}

	if len(assigned) > 0 {
		playlist := make([]PlaylistEntry, 0, len(assigned))
		for _, item := range assigned {
			if !item.Active {
				continue
			}
			duration := item.DefaultDuration
			if item.Duration != nil {
				duration = *item.Duration
			}
			playlist = append(playlist, PlaylistEntry{
				Kind:     item.Kind,
				Path:     item.Filename,
				Duration: duration,
			})
		}
		return playlist, nil
	}

	global, err := r.store.ListActiveGlobalMedia()
	if err != nil {
		return nil, err
	}
	playlist := make([]PlaylistEntry, 0, len(global))
	for _, m := range global {
		playlist = append(playlist, PlaylistEntry{
			Kind:     m.Kind,
			Path:     m.Filename,
			Duration: m.Duration,
		})
	}
	return playlist, nil
}

// resolveJSONAPI fetches the external feed. Any failure (network,
// timeout, non-2xx, malformed body) degrades to an empty item list;
// the screen shows nothing rather than an error.
func (r *Resolver) resolveJSONAPI(ctx context.Context, screen model.Screen) *JSONAPISpec {
	spec := &JSONAPISpec{Items: []json.RawMessage{}}
	if screen.JSONAPITemplate != nil {
		spec.Template = *screen.JSONAPITemplate
	}

	if screen.CarouselEnabled {
		sponsors, err := r.store.ListScreenSponsors(screen.ID)
		if err != nil {
			log.Error().Err(err).Int("screen_id", screen.ID).Msg("failed to list sponsors")
		} else {
			for _, sp := range sponsors {
				spec.Sponsors = append(spec.Sponsors, SponsorEntry{Path: sp.Filename})
			}
			spec.CarouselSpeed = screen.CarouselSpeed
		}
	}

	items, err := r.fetchExternalItems(ctx, *screen.JSONAPIURL)
	if err != nil {
		log.Error().Err(err).
			Str("screen", screen.Name).
			Str("url", *screen.JSONAPIURL).
			Msg("external json fetch failed, showing empty payload")
		return spec
	}
	spec.Items = items
	return spec
}

func (r *Resolver) fetchExternalItems(ctx context.Context, url string) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, externalFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("malformed feed body: %w", err)
	}
	return items, nil
}

// globalRedirectURL returns the legacy installation-wide redirect
// target, or "" when the override is off. Settings read failures are
// treated as "override off" so resolution never blanks on them.
func (r *Resolver) globalRedirectURL() string {
	enabled, err := r.settings.Bool(settings.KeyRedirectEnabled)
	if err != nil {
		log.Error().Err(err).Msg("failed to read redirect_enabled setting")
		return ""
	}
	if !enabled {
		return ""
	}
	url, err := r.settings.Get(settings.KeyRedirectURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to read redirect_url setting")
		return ""
	}
	return url
}

func strPresent(s *string) bool {
	return s != nil && *s != ""
}
