package db

import (
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/model"
)

// ReplaceScreenMedia swaps out the screen's entire association set in
// one transaction: readers see either the old set or the new one,
// never the cleared-but-unfilled window in between. Media IDs that do
// not exist are skipped via the INSERT ... SELECT guard.
func (s *pgStore) ReplaceScreenMedia(screenID int, mediaIDs []int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				return
			}
		}
	}()

	if _, err = tx.Exec(`
		DELETE FROM screen_media WHERE screen_id = $1;
	`, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to clear screen associations")
		return err
	}

	for idx, mediaID := range mediaIDs {
		if _, err = tx.Exec(`
			INSERT INTO screen_media (screen_id, media_id, position)
			SELECT $1, id, $3 FROM media WHERE id = $2
			ON CONFLICT DO NOTHING;
		`, screenID, mediaID, idx); err != nil {
			log.Error().Err(err).
				Int("screen_id", screenID).
				Int("media_id", mediaID).
				Msg("failed to insert screen association")
			return err
		}
	}
	return nil
}

// AppendScreenMedia adds one association at the end of the screen's
// current order.
func (s *pgStore) AppendScreenMedia(screenID, mediaID int) error {
	_, err := s.db.Exec(`
		INSERT INTO screen_media (screen_id, media_id, position)
		VALUES ($1, $2, (
			SELECT COALESCE(MAX(position) + 1, 0)
			FROM screen_media
			WHERE screen_id = $1
		))
		ON CONFLICT DO NOTHING;`, screenID, mediaID)
	if err != nil {
		log.Error().Err(err).
			Int("screen_id", screenID).
			Int("media_id", mediaID).
			Msg("failed to append screen association")
	}
	return err
}

// SetScreenMediaDuration updates (or clears, when duration is nil) the
// override on an existing association. Returns false when no such
// association exists.
func (s *pgStore) SetScreenMediaDuration(screenID, mediaID int, duration *int) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE screen_media
		SET duration = $3
		WHERE screen_id = $1 AND media_id = $2;`, screenID, mediaID, duration)
	if err != nil {
		log.Error().Err(err).
			Int("screen_id", screenID).
			Int("media_id", mediaID).
			Msg("failed to set association duration")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListScreenMedia returns every association row for the screen joined
// with its media item, in screen order. Inactive media is included;
// the resolver filters it so "has associations" stays distinguishable
// from "has visible content".
func (s *pgStore) ListScreenMedia(screenID int) ([]ScreenMediaItem, error) {
	var items []ScreenMediaItem
	err := s.db.Select(&items, `
		SELECT
		sm.media_id,
		sm.position,
		sm.duration,
		m.kind,
		m.filename,
		m.duration AS default_duration,
		m.active
		FROM screen_media sm
		JOIN media m ON sm.media_id = m.id
		WHERE sm.screen_id = $1
		ORDER BY sm.position;`, screenID)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to list screen media")
		return nil, err
	}
	return items, nil
}

// AddScreenSponsor appends a sponsor logo at the end of the screen's
// carousel order.
func (s *pgStore) AddScreenSponsor(screenID int, filename string) (model.Sponsor, error) {
	var sp model.Sponsor
	err := s.db.Get(&sp, `
		INSERT INTO screen_sponsors (screen_id, filename, position, created_at)
		VALUES ($1, $2, (
			SELECT COALESCE(MAX(position) + 1, 0)
			FROM screen_sponsors
			WHERE screen_id = $1
		), now())
		RETURNING id, screen_id, filename, position, created_at;`, screenID, filename)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to add screen sponsor")
		return model.Sponsor{}, err
	}
	return sp, nil
}

func (s *pgStore) ListScreenSponsors(screenID int) ([]model.Sponsor, error) {
	var sponsors []model.Sponsor
	err := s.db.Select(&sponsors, `
		SELECT id, screen_id, filename, position, created_at
		FROM screen_sponsors
		WHERE screen_id = $1
		ORDER BY position;`, screenID)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to list screen sponsors")
		return nil, err
	}
	return sponsors, nil
}

func (s *pgStore) DeleteScreenSponsor(screenID, sponsorID int) error {
	_, err := s.db.Exec(`
		DELETE FROM screen_sponsors
		WHERE id = $1 AND screen_id = $2;`, sponsorID, screenID)
	if err != nil {
		log.Error().Err(err).Int("sponsor_id", sponsorID).Msg("failed to delete screen sponsor")
	}
	return err
}
