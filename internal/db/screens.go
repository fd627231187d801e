package db

import (
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/model"
)

const screenColumns = `
	id, public_id, name, description, location, active, pairing_code,
	display_mode, redirect_url, iframe_url, iframe_margin_left, iframe_margin_right,
	json_api_url, json_api_template, legacy_redirect_enabled, legacy_redirect_url,
	carousel_enabled, carousel_speed, created_at, updated_at`

func (s *pgStore) CreateScreen(
	name string,
	description, location *string,
	publicID, pairingCode string,
) (model.Screen, error) {
	var sc model.Screen
	q := `
	INSERT INTO screens
	(public_id, name, description, location, active, pairing_code, display_mode, created_at, updated_at)
	VALUES
	($1,        $2,   $3,          $4,       true,   $5,           'media',      now(),      now())
	RETURNING` + screenColumns + `;`
	if err := s.db.Get(&sc, q, publicID, name, description, location, pairingCode); err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to create screen")
		return model.Screen{}, err
	}
	return sc, nil
}

func (s *pgStore) GetScreenByID(id int) (model.Screen, error) {
	var sc model.Screen
	err := s.db.Get(&sc, `SELECT`+screenColumns+` FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to get screen by id")
	}
	return sc, err
}

func (s *pgStore) GetScreenByPublicID(publicID string) (model.Screen, error) {
	var sc model.Screen
	err := s.db.Get(&sc, `SELECT`+screenColumns+` FROM screens WHERE public_id = $1;`, publicID)
	return sc, err
}

func (s *pgStore) GetScreenByPairingCode(code string) (model.Screen, error) {
	var sc model.Screen
	err := s.db.Get(&sc, `SELECT`+screenColumns+` FROM screens WHERE pairing_code = $1;`, code)
	return sc, err
}

func (s *pgStore) ListScreens() ([]model.Screen, error) {
	var screens []model.Screen
	err := s.db.Select(&screens, `
		SELECT`+screenColumns+`
		FROM screens
		ORDER BY created_at DESC;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list screens")
		return nil, err
	}
	return screens, nil
}

func (s *pgStore) UpdateScreen(id int, p UpdateScreenParams) error {
	_, err := s.db.Exec(`
		UPDATE screens
		SET name                    = COALESCE($2,  name),
		description             = COALESCE($3,  description),
		location                = COALESCE($4,  location),
		display_mode            = COALESCE($5,  display_mode),
		redirect_url            = COALESCE($6,  redirect_url),
		iframe_url              = COALESCE($7,  iframe_url),
		iframe_margin_left      = COALESCE($8,  iframe_margin_left),
		iframe_margin_right     = COALESCE($9,  iframe_margin_right),
		json_api_url            = COALESCE($10, json_api_url),
		json_api_template       = COALESCE($11, json_api_template),
		legacy_redirect_enabled = COALESCE($12, legacy_redirect_enabled),
		legacy_redirect_url     = COALESCE($13, legacy_redirect_url),
		carousel_enabled        = COALESCE($14, carousel_enabled),
		carousel_speed          = COALESCE($15, carousel_speed),
		updated_at              = now()
		WHERE id = $1;`,
		id,
		p.Name, p.Description, p.Location, p.DisplayMode,
		p.RedirectURL, p.IframeURL, p.IframeMarginLeft, p.IframeMarginRight,
		p.JSONAPIURL, p.JSONAPITemplate,
		p.LegacyRedirectEnabled, p.LegacyRedirectURL,
		p.CarouselEnabled, p.CarouselSpeed,
	)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to update screen")
	}
	return err
}

func (s *pgStore) SetScreenActive(id int, active bool) error {
	_, err := s.db.Exec(`
		UPDATE screens
		SET active = $2,
		updated_at = now()
		WHERE id = $1;`, id, active)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to set screen active flag")
	}
	return err
}

// DeleteScreen removes the screen row; associations and sponsors go
// with it via ON DELETE CASCADE.
func (s *pgStore) DeleteScreen(id int) error {
	_, err := s.db.Exec(`DELETE FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("failed to delete screen")
	}
	return err
}
