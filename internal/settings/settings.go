// Typed access to the flat key/value settings table. Older installs
// store boolean keys as the literal strings "True"/"False"; that quirk
// is confined to this package so nothing else compares raw strings.
package settings

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/model"
)

// Legacy keys consumed by the display resolver.
const (
	KeyRedirectEnabled = "redirect_enabled"
	KeyRedirectURL     = "redirect_url"
)

const (
	boolTrue  = "True"
	boolFalse = "False"
)

type Service struct {
	store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{store: store}
}

// Get returns the raw value for key, or "" when the key is absent.
func (s *Service) Get(key string) (string, error) {
	setting, err := s.store.GetSetting(key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *Service) Set(key, value string) error {
	return s.store.UpsertSetting(key, value)
}

// Bool reads a boolean-encoded key. Anything other than the literal
// "True" (absent key included) reads as false.
func (s *Service) Bool(key string) (bool, error) {
	value, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return value == boolTrue, nil
}

func (s *Service) SetBool(key string, v bool) error {
	value := boolFalse
	if v {
		value = boolTrue
	}
	return s.store.UpsertSetting(key, value)
}

func (s *Service) All() ([]model.Setting, error) {
	return s.store.ListSettings()
}

// EnsureDefaults inserts any of the given keys that do not exist yet,
// leaving operator-edited values alone. Called once at startup.
func (s *Service) EnsureDefaults(defaults map[string]string) error {
	for key, value := range defaults {
		_, err := s.store.GetSetting(key)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err := s.store.UpsertSetting(key, value); err != nil {
			return err
		}
		log.Info().Str("key", key).Msg("seeded default setting")
	}
	return nil
}
