package media

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-av/vitrine/internal/model"
)

type recordingStorage struct {
	saved []string
}

func (r *recordingStorage) SaveFile(_ *multipart.FileHeader, filename string) (string, error) {
	r.saved = append(r.saved, filename)
	return filename, nil
}

func (r *recordingStorage) DeleteFile(string) error { return nil }

func TestNormalizeClassifiesByExtension(t *testing.T) {
	cases := []struct {
		filename string
		kind     string
		duration int
	}{
		{"photo.jpg", model.MediaKindImage, 5000},
		{"photo.JPEG", model.MediaKindImage, 5000},
		{"banner.png", model.MediaKindImage, 5000},
		{"anim.gif", model.MediaKindImage, 5000},
		{"clip.mp4", model.MediaKindVideo, 30000},
		{"clip.MOV", model.MediaKindVideo, 30000},
		{"clip.webm", model.MediaKindVideo, 30000},
	}

	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			assets := &recordingStorage{}
			n := NewPassthrough(assets)

			asset, err := n.Normalize(&multipart.FileHeader{Filename: tc.filename})
			require.NoError(t, err)
			assert.Equal(t, tc.kind, asset.Kind)
			assert.Equal(t, tc.duration, asset.Duration)
			assert.Equal(t, []string{tc.filename}, assets.saved)
		})
	}
}

func TestNormalizeRejectsUnknownExtension(t *testing.T) {
	assets := &recordingStorage{}
	n := NewPassthrough(assets)

	for _, filename := range []string{"doc.pdf", "script.sh", "noext"} {
		_, err := n.Normalize(&multipart.FileHeader{Filename: filename})
		assert.ErrorIs(t, err, ErrUnsupportedFormat, filename)
		assert.Empty(t, assets.saved, "rejected uploads must not be stored")
	}
}
