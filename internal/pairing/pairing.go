// Pairing codes bind a physical display to its screen identity.
package pairing

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/northlight-av/vitrine/internal/db"
)

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 6

	// 36^6 codes make exhaustion practically impossible, but an
	// unbounded retry loop is a silent-hang risk if the table ever
	// fills up, so fail loudly instead.
	maxIssueAttempts = 100

	cacheKeyPrefix = "pairing:"
	cacheTTL       = 5 * time.Minute
)

var (
	ErrCodeNotFound       = errors.New("pairing code not found")
	ErrCodeSpaceExhausted = errors.New("could not issue a unique pairing code")
)

// Issuer generates collision-free pairing codes and resolves codes
// back to screen public identifiers. The Redis client is optional;
// without it every pair lookup goes straight to the store.
type Issuer struct {
	store db.Store
	rdb   *redis.Client
}

func NewIssuer(store db.Store, rdb *redis.Client) *Issuer {
	return &Issuer{store: store, rdb: rdb}
}

// Issue returns a fresh 6-character uppercase alphanumeric code that
// no existing screen uses.
func (i *Issuer) Issue() (string, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		code := randomCode()
		_, err := i.store.GetScreenByPairingCode(code)
		if errors.Is(err, sql.ErrNoRows) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		log.Info().Str("code", code).Msg("pairing code collision, retrying")
	}
	log.Error().Int("attempts", maxIssueAttempts).Msg("pairing code space exhausted")
	return "", ErrCodeSpaceExhausted
}

// PairByCode resolves a code (case-insensitive) to the public
// identifier of the screen it was issued to. Devices poll this while
// waiting on the operator, so successful lookups are cached briefly;
// Redis being down only costs the cache.
func (i *Issuer) PairByCode(ctx context.Context, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrCodeNotFound
	}

	if i.rdb != nil {
		cached, err := i.rdb.Get(ctx, cacheKeyPrefix+code).Result()
		if err == nil && cached != "" {
			return cached, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Msg("pairing cache read failed")
		}
	}

	screen, err := i.store.GetScreenByPairingCode(code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrCodeNotFound
		}
		return "", err
	}

	if i.rdb != nil {
		if err := i.rdb.Set(ctx, cacheKeyPrefix+code, screen.PublicID, cacheTTL).Err(); err != nil {
			log.Error().Err(err).Msg("pairing cache write failed")
		}
	}

	return screen.PublicID, nil
}

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}
