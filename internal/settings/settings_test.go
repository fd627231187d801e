package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-av/vitrine/internal/db"
)

func TestGetAbsentKey(t *testing.T) {
	svc := NewService(db.NewMemStore())

	value, err := svc.Get("site_title")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSetGetRoundTrip(t *testing.T) {
	svc := NewService(db.NewMemStore())

	require.NoError(t, svc.Set("site_title", "Lobby Signage"))
	value, err := svc.Get("site_title")
	require.NoError(t, err)
	assert.Equal(t, "Lobby Signage", value)

	require.NoError(t, svc.Set("site_title", "Updated"))
	value, err = svc.Get("site_title")
	require.NoError(t, err)
	assert.Equal(t, "Updated", value)
}

// Boolean keys are stored as the literal strings "True"/"False" for
// compatibility with values written by older installs.
func TestBoolEncoding(t *testing.T) {
	store := db.NewMemStore()
	svc := NewService(store)

	require.NoError(t, svc.SetBool(KeyRedirectEnabled, true))
	raw, err := svc.Get(KeyRedirectEnabled)
	require.NoError(t, err)
	assert.Equal(t, "True", raw)

	enabled, err := svc.Bool(KeyRedirectEnabled)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, svc.SetBool(KeyRedirectEnabled, false))
	raw, err = svc.Get(KeyRedirectEnabled)
	require.NoError(t, err)
	assert.Equal(t, "False", raw)

	t.Run("only the literal True reads as true", func(t *testing.T) {
		for _, raw := range []string{"true", "TRUE", "1", "yes", ""} {
			require.NoError(t, svc.Set(KeyRedirectEnabled, raw))
			enabled, err := svc.Bool(KeyRedirectEnabled)
			require.NoError(t, err)
			assert.False(t, enabled, "value %q", raw)
		}
	})

	t.Run("absent key reads as false", func(t *testing.T) {
		enabled, err := svc.Bool("never_written")
		require.NoError(t, err)
		assert.False(t, enabled)
	})
}

func TestEnsureDefaults(t *testing.T) {
	svc := NewService(db.NewMemStore())

	require.NoError(t, svc.Set("site_title", "Operator Choice"))
	require.NoError(t, svc.EnsureDefaults(map[string]string{
		"site_title":       "Vitrine",
		"redirect_enabled": "False",
	}))

	value, err := svc.Get("site_title")
	require.NoError(t, err)
	assert.Equal(t, "Operator Choice", value, "seeding must not overwrite operator values")

	value, err = svc.Get("redirect_enabled")
	require.NoError(t, err)
	assert.Equal(t, "False", value)

	// running it again changes nothing
	require.NoError(t, svc.EnsureDefaults(map[string]string{"site_title": "Vitrine"}))
	value, err = svc.Get("site_title")
	require.NoError(t, err)
	assert.Equal(t, "Operator Choice", value)
}
