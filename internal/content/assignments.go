package content

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/db"
)

var (
	ErrScreenNotFound      = errors.New("screen not found")
	ErrMediaNotFound       = errors.New("media not found")
	ErrAssociationNotFound = errors.New("association not found")
)

// Assignments manages which media a screen shows, in what order, and
// with what per-screen duration overrides.
type Assignments struct {
	store db.Store
}

func NewAssignments(store db.Store) *Assignments {
	return &Assignments{store: store}
}

// Assign replaces the screen's entire association set atomically with
// the given order. Unknown media IDs are silently skipped.
func (a *Assignments) Assign(screenID int, mediaIDs []int) error {
	if _, err := a.store.GetScreenByID(screenID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScreenNotFound
		}
		return err
	}

	if err := a.store.ReplaceScreenMedia(screenID, mediaIDs); err != nil {
		return err
	}
	log.Info().Int("screen_id", screenID).Int("count", len(mediaIDs)).Msg("replaced screen content")
	return nil
}

// SetDuration updates the override on an existing association; nil
// clears it. Returns the duration now in effect for the pair.
func (a *Assignments) SetDuration(screenID, mediaID int, duration *int) (int, error) {
	found, err := a.store.SetScreenMediaDuration(screenID, mediaID, duration)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrAssociationNotFound
	}
	if duration != nil {
		return *duration, nil
	}

	// cleared: the media item's own default applies again
	m, err := a.store.GetMediaByID(mediaID)
	if err != nil {
		return 0, err
	}
	return m.Duration, nil
}

// AppendUploaded links media ingested directly against a screen,
// placed after everything already assigned. Unlike Assign it never
// touches the existing set.
func (a *Assignments) AppendUploaded(screenID, mediaID int) error {
	if _, err := a.store.GetScreenByID(screenID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScreenNotFound
		}
		return err
	}
	if _, err := a.store.GetMediaByID(mediaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return err
	}
	return a.store.AppendScreenMedia(screenID, mediaID)
}
