package token

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testSecrets() Secrets {
	return Secrets{
		Access: "access-secret",
		Verify: "verify-secret",
		Forgot: "forgot-secret",
	}
}

func newTestCodec(t *testing.T) (*Codec, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := NewCodec(testSecrets(), clock)
	require.NoError(t, err)
	return codec, clock
}

func TestCodecRoundTrip(t *testing.T) {
	codec, clock := newTestCodec(t)

	for _, kind := range []Kind{Access, Verify, Forgot} {
		t.Run(string(kind), func(t *testing.T) {
			minted, err := codec.Mint(kind, Claims{Email: "a@x.com", Password: "pw1"})
			require.NoError(t, err)

			claims, err := codec.Open(kind, minted)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", claims.Email)
			assert.Equal(t, "pw1", claims.Password)
			assert.False(t, claims.Expired(clock.Now()))
		})
	}
}

func TestCodecExpiresMatchesKindTTL(t *testing.T) {
	codec, clock := newTestCodec(t)

	cases := map[Kind]time.Duration{
		Access: AccessTTL,
		Verify: VerifyTTL,
		Forgot: ForgotTTL,
	}
	for kind, ttl := range cases {
		minted, err := codec.Mint(kind, Claims{Email: "a@x.com"})
		require.NoError(t, err)

		claims, err := codec.Open(kind, minted)
		require.NoError(t, err)
		assert.Equal(t, clock.Now().Add(ttl).UnixMilli(), claims.Expires)
	}
}

func TestCodecExpiryBoundary(t *testing.T) {
	codec, clock := newTestCodec(t)

	minted, err := codec.Mint(Verify, Claims{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	claims, err := codec.Open(Verify, minted)
	require.NoError(t, err)

	// Exactly at expiry the token is still live; one millisecond past it is not.
	clock.Advance(VerifyTTL)
	assert.False(t, claims.Expired(clock.Now()))

	clock.Advance(time.Millisecond)
	assert.True(t, claims.Expired(clock.Now()))
}

func TestCodecCrossKindRejection(t *testing.T) {
	codec, _ := newTestCodec(t)

	kinds := []Kind{Access, Verify, Forgot}
	for _, mintKind := range kinds {
		minted, err := codec.Mint(mintKind, Claims{Email: "a@x.com", Password: "pw1"})
		require.NoError(t, err)

		for _, openKind := range kinds {
			if openKind == mintKind {
				continue
			}
			_, err := codec.Open(openKind, minted)
			assert.ErrorIs(t, err, ErrDecryption, "%s opened as %s", mintKind, openKind)
		}
	}
}

func TestCodecForgotClaimsOmitPassword(t *testing.T) {
	codec, _ := newTestCodec(t)

	minted, err := codec.Mint(Forgot, Claims{Email: "a@x.com"})
	require.NoError(t, err)

	sealer, err := NewSealer(testSecrets().Forgot)
	require.NoError(t, err)
	payload, err := sealer.Unseal(minted)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Contains(t, raw, "email")
	assert.Contains(t, raw, "expires")
	assert.NotContains(t, raw, "password")
}

func TestCodecOpenGarbage(t *testing.T) {
	codec, _ := newTestCodec(t)

	_, err := codec.Open(Access, "")
	assert.ErrorIs(t, err, ErrDecryption)

	_, err = codec.Open(Access, "not-a-token")
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestCodecOpenNonJSONPayload(t *testing.T) {
	codec, _ := newTestCodec(t)

	sealer, err := NewSealer(testSecrets().Access)
	require.NoError(t, err)
	sealed, err := sealer.Seal([]byte("not json"))
	require.NoError(t, err)

	_, err = codec.Open(Access, sealed)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestCodecUnknownKind(t *testing.T) {
	codec, _ := newTestCodec(t)

	_, err := codec.Mint(Kind("refresh"), Claims{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = codec.Open(Kind("refresh"), base64.RawURLEncoding.EncodeToString(make([]byte, 32)))
	assert.ErrorIs(t, err, ErrUnknownKind)
}
