// Media ingestion. Real transcoding lives in an external pipeline;
// this package only defines the normalizer contract the upload
// endpoints depend on, plus a passthrough implementation that stores
// the file as-is.
package media

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/model"
	"github.com/northlight-av/vitrine/internal/storage"
)

// Default playback durations in milliseconds, used when the normalizer
// cannot measure the real one.
const (
	defaultImageDuration = 5000
	defaultVideoDuration = 30000
)

var ErrUnsupportedFormat = errors.New("unsupported media format")

// Asset is the normalizer's output: a playable stored asset plus the
// metadata the content library records for it.
type Asset struct {
	Ref      string
	Kind     string
	Duration int
}

// Normalizer turns an uploaded file into a playable Asset.
type Normalizer interface {
	Normalize(fileHeader *multipart.FileHeader) (Asset, error)
}

type passthrough struct {
	assets storage.Storage
}

// NewPassthrough returns a Normalizer that stores the upload verbatim
// and classifies it by extension.
func NewPassthrough(assets storage.Storage) Normalizer {
	return &passthrough{assets: assets}
}

func (p *passthrough) Normalize(fileHeader *multipart.FileHeader) (Asset, error) {
	kind, err := kindForFilename(fileHeader.Filename)
	if err != nil {
		return Asset{}, err
	}

	ref, err := p.assets.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to store upload: %w", err)
	}

	duration := defaultImageDuration
	if kind == model.MediaKindVideo {
		duration = defaultVideoDuration
	}

	log.Debug().Str("ref", ref).Str("kind", kind).Msg("normalized upload")
	return Asset{Ref: ref, Kind: kind, Duration: duration}, nil
}

func kindForFilename(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return model.MediaKindImage, nil
	case ".mp4", ".avi", ".mov", ".webm":
		return model.MediaKindVideo, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}
