package db

import (
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/model"
)

func (s *pgStore) GetSetting(key string) (model.Setting, error) {
	var setting model.Setting
	err := s.db.Get(&setting, `
		SELECT id, key, value, updated_at
		FROM settings
		WHERE key = $1;`, key)
	return setting, err
}

func (s *pgStore) UpsertSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		updated_at = now();`, key, value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upsert setting")
	}
	return err
}

func (s *pgStore) ListSettings() ([]model.Setting, error) {
	var all []model.Setting
	err := s.db.Select(&all, `
		SELECT id, key, value, updated_at
		FROM settings
		ORDER BY key;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list settings")
		return nil, err
	}
	return all, nil
}
