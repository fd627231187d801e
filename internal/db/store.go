// Exposes a Store interface that the engine components and HTTP
// endpoints are written against, so they can be tested without a
// running PostgreSQL instance.
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/northlight-av/vitrine/internal/model"
)

// ScreenMediaItem is one row of a screen's resolved content list:
// the association columns joined with the media columns the display
// resolver needs. Duration is the per-association override; the
// media item's own default is DefaultDuration.
type ScreenMediaItem struct {
	MediaID         int    `db:"media_id"`
	Position        int    `db:"position"`
	Duration        *int   `db:"duration"`
	Kind            string `db:"kind"`
	Filename        string `db:"filename"`
	DefaultDuration int    `db:"default_duration"`
	Active          bool   `db:"active"`
}

// UpdateScreenParams carries optional screen settings updates; nil
// fields are left untouched (COALESCE semantics).
type UpdateScreenParams struct {
	Name                  *string
	Description           *string
	Location              *string
	DisplayMode           *string
	RedirectURL           *string
	IframeURL             *string
	IframeMarginLeft      *int
	IframeMarginRight     *int
	JSONAPIURL            *string
	JSONAPITemplate       *string
	LegacyRedirectEnabled *bool
	LegacyRedirectURL     *string
	CarouselEnabled       *bool
	CarouselSpeed         *string
}

type Store interface {
	// media functions
	CreateMedia(filename, originalFilename, kind string, duration, orderIndex int, isGlobal bool) (model.MediaItem, error)
	GetMediaByID(id int) (model.MediaItem, error)
	ListMedia() ([]model.MediaItem, error)
	ListActiveGlobalMedia() ([]model.MediaItem, error)
	ListExpiredMedia(now time.Time) ([]model.MediaItem, error)
	CountMedia() (int, error)
	UpdateMediaDuration(id, duration int) error
	UpdateMediaExpiry(id int, expireAt *time.Time, autoDelete bool) error
	SetMediaActive(id int, active bool) error
	RetireMedia(id int) (bool, error)
	ReorderMedia(orderedIDs []int) error
	DeleteMedia(id int) (bool, error)

	// screen functions
	CreateScreen(name string, description, location *string, publicID, pairingCode string) (model.Screen, error)
	GetScreenByID(id int) (model.Screen, error)
	GetScreenByPublicID(publicID string) (model.Screen, error)
	GetScreenByPairingCode(code string) (model.Screen, error)
	ListScreens() ([]model.Screen, error)
	UpdateScreen(id int, params UpdateScreenParams) error
	SetScreenActive(id int, active bool) error
	DeleteScreen(id int) error

	// screen <-> media association functions
	ReplaceScreenMedia(screenID int, mediaIDs []int) error
	AppendScreenMedia(screenID, mediaID int) error
	SetScreenMediaDuration(screenID, mediaID int, duration *int) (bool, error)
	ListScreenMedia(screenID int) ([]ScreenMediaItem, error)

	// sponsor functions
	AddScreenSponsor(screenID int, filename string) (model.Sponsor, error)
	ListScreenSponsors(screenID int) ([]model.Sponsor, error)
	DeleteScreenSponsor(screenID, sponsorID int) error

	// settings functions
	GetSetting(key string) (model.Setting, error)
	UpsertSetting(key, value string) error
	ListSettings() ([]model.Setting, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	if conn == nil {
		conn = DB
	}
	return &pgStore{db: conn}
}
