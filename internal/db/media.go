package db

import (
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/model"
)

const mediaColumns = `
	id, filename, original_filename, kind, duration, active,
	order_index, is_global, expire_at, auto_delete, created_at`

func (s *pgStore) CreateMedia(
	filename, originalFilename, kind string,
	duration, orderIndex int,
	isGlobal bool,
) (model.MediaItem, error) {
	var m model.MediaItem
	query := `
	INSERT INTO media
	(filename, original_filename, kind, duration, active, order_index, is_global, auto_delete, created_at)
	VALUES
	($1,       $2,                $3,   $4,       true,   $5,          $6,        false,       now())
	RETURNING` + mediaColumns + `;`

	if err := s.db.Get(&m, query,
		filename, originalFilename, kind, duration, orderIndex, isGlobal,
	); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("failed to create media item")
		return model.MediaItem{}, err
	}
	return m, nil
}

func (s *pgStore) GetMediaByID(id int) (model.MediaItem, error) {
	var m model.MediaItem
	err := s.db.Get(&m, `SELECT`+mediaColumns+` FROM media WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("failed to get media item by id")
	}
	return m, err
}

func (s *pgStore) ListMedia() ([]model.MediaItem, error) {
	var all []model.MediaItem
	err := s.db.Select(&all, `
		SELECT`+mediaColumns+`
		FROM media
		ORDER BY order_index, created_at DESC;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list media")
		return nil, err
	}
	return all, nil
}

// ListActiveGlobalMedia returns the global fallback playlist: every
// active library-wide item, ordered the way the display shows it.
func (s *pgStore) ListActiveGlobalMedia() ([]model.MediaItem, error) {
	var all []model.MediaItem
	err := s.db.Select(&all, `
		SELECT`+mediaColumns+`
		FROM media
		WHERE active = true AND is_global = true
		ORDER BY order_index, created_at DESC;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list active global media")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) ListExpiredMedia(now time.Time) ([]model.MediaItem, error) {
	var all []model.MediaItem
	err := s.db.Select(&all, `
		SELECT`+mediaColumns+`
		FROM media
		WHERE expire_at IS NOT NULL AND expire_at <= $1
		ORDER BY id;`, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to list expired media")
		return nil, err
	}
	return all, nil
}

func (s *pgStore) CountMedia() (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT count(*) FROM media;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to count media")
	}
	return n, err
}

func (s *pgStore) UpdateMediaDuration(id, duration int) error {
	_, err := s.db.Exec(`UPDATE media SET duration = $2 WHERE id = $1;`, id, duration)
	if err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("failed to update media duration")
	}
	return err
}

func (s *pgStore) UpdateMediaExpiry(id int, expireAt *time.Time, autoDelete bool) error {
	_, err := s.db.Exec(`
		UPDATE media
		SET expire_at = $2,
		auto_delete = $3
		WHERE id = $1;`, id, expireAt, autoDelete)
	if err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("failed to update media expiry")
	}
	return err
}

func (s *pgStore) SetMediaActive(id int, active bool) error {
	_, err := s.db.Exec(`UPDATE media SET active = $2 WHERE id = $1;`, id, active)
	if err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("failed to set media active flag")
	}
	return err
}

// RetireMedia flips an item inactive only if it is currently active,
// and reports whether this call did the flip. Concurrent reap passes
// racing on the same row therefore never double-count it.
func (s *pgStore) RetireMedia(id int) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE media
		SET active = false
		WHERE id = $1 AND active = true;`, id)
	if err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("failed to retire media")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReorderMedia rewrites the global order_index of every listed item to
// its position in orderedIDs, in a single transaction. Unknown IDs are
// skipped by the WHERE clause.
func (s *pgStore) ReorderMedia(orderedIDs []int) error {
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

	for idx, mediaID := range orderedIDs {
		if _, err = tx.Exec(`
			UPDATE media
			SET order_index = $1
			WHERE id = $2;`, idx, mediaID); err != nil {
			log.Error().Err(err).Int("media_id", mediaID).Msg("failed to reorder media")
			return err
		}
	}
	return nil
}

// DeleteMedia removes the row and reports whether this call removed
// it, so callers racing on the same id never both claim the deletion.
func (s *pgStore) DeleteMedia(id int) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM media WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("failed to delete media")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
