// Content lifecycle: expiry enforcement over the media library.
package content

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/storage"
)

// ReapResult counts what one reap pass changed. An item is never both
// retired and deleted in the same pass.
type ReapResult struct {
	Retired int `json:"retired"`
	Deleted int `json:"deleted"`
}

// Lifecycle retires or deletes media whose validity window has
// elapsed. It only runs when an admin surface triggers it; expiry is
// enforced eventually, not punctually.
type Lifecycle struct {
	store  db.Store
	assets storage.Storage
}

func NewLifecycle(store db.Store, assets storage.Storage) *Lifecycle {
	return &Lifecycle{store: store, assets: assets}
}

// ReapExpired walks every item whose expire_at is <= now. Items marked
// auto_delete lose their backing asset (best-effort) and their row;
// the rest are flipped inactive if still active. Each transition is
// conditional on the row's current state, so concurrent passes
// converge without double-counting and an immediate re-run returns
// {0,0}.
func (l *Lifecycle) ReapExpired(now time.Time) (ReapResult, error) {
	var result ReapResult

	expired, err := l.store.ListExpiredMedia(now)
	if err != nil {
		return result, err
	}

	for _, item := range expired {
		if item.AutoDelete {
			if err := l.assets.DeleteFile(item.Filename); err != nil {
				// asset removal is best-effort; the record still goes
				log.Error().Err(err).
					Int("media_id", item.ID).
					Str("filename", item.Filename).
					Msg("failed to delete expired asset")
			}
			deleted, err := l.store.DeleteMedia(item.ID)
			if err != nil {
				log.Error().Err(err).Int("media_id", item.ID).Msg("failed to delete expired media")
				continue
			}
			if deleted {
				result.Deleted++
				log.Info().
					Int("media_id", item.ID).
					Str("original_filename", item.OriginalFilename).
					Msg("auto-deleted expired media")
			}
			continue
		}

		retired, err := l.store.RetireMedia(item.ID)
		if err != nil {
			log.Error().Err(err).Int("media_id", item.ID).Msg("failed to retire expired media")
			continue
		}
		if retired {
			result.Retired++
			log.Info().
				Int("media_id", item.ID).
				Str("original_filename", item.OriginalFilename).
				Msg("deactivated expired media")
		}
	}

	return result, nil
}
