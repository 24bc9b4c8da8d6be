package token

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrUnknownKind means the caller asked for a kind the codec was not
// configured with; it is a programming error, not a token failure.
var ErrUnknownKind = errors.New("unknown token kind")

type Kind string

const (
	Access Kind = "access"
	Verify Kind = "verify"
	Forgot Kind = "forgot"
)

const (
	AccessTTL = 365 * 24 * time.Hour
	VerifyTTL = 10 * time.Minute
	ForgotTTL = 10 * time.Minute
)

// Status is the outcome contract exposed to the UI layer by every
// validation entry point.
type Status string

const (
	StatusExpired  Status = "expired"
	StatusValid    Status = "valid"
	StatusInvalid  Status = "invalid"
	StatusExisting Status = "existing"
)

// Claims is the payload sealed into a token. Password is omitted for
// forgot tokens, Type is only carried by access tokens. Expires is
// unix milliseconds, set by Mint.
type Claims struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Type     string `json:"type,omitempty"`
	Expires  int64  `json:"expires"`
}

// Expired reports whether the claims are past their expiry at the given
// instant. The boundary is strict: equality is not expired.
func (c Claims) Expired(now time.Time) bool {
	return now.UnixMilli() > c.Expires
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// Secrets holds the three independent token secrets, one per kind.
type Secrets struct {
	Access string
	Verify string
	Forgot string
}

// Codec mints and opens typed tokens. Each kind is sealed under its own
// secret so tokens are never interchangeable across kinds.
type Codec struct {
	sealers map[Kind]*Sealer
	ttls    map[Kind]time.Duration
	clock   Clock
}

func NewCodec(secrets Secrets, clock Clock) (*Codec, error) {
	access, err := NewSealer(secrets.Access)
	if err != nil {
		return nil, err
	}
	verify, err := NewSealer(secrets.Verify)
	if err != nil {
		return nil, err
	}
	forgot, err := NewSealer(secrets.Forgot)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Codec{
		sealers: map[Kind]*Sealer{
			Access: access,
			Verify: verify,
			Forgot: forgot,
		},
		ttls: map[Kind]time.Duration{
			Access: AccessTTL,
			Verify: VerifyTTL,
			Forgot: ForgotTTL,
		},
		clock: clock,
	}, nil
}

// Mint attaches the kind's expiry to the claims, serializes them and
// seals the result under the kind's secret.
func (c *Codec) Mint(kind Kind, claims Claims) (string, error) {
	sealer, ok := c.sealers[kind]
	if !ok {
		return "", ErrUnknownKind
	}
	claims.Expires = c.clock.Now().Add(c.ttls[kind]).UnixMilli()
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return sealer.Seal(payload)
}

// Open unseals a token under the kind's secret and parses the claims.
// It does not check expiry; callers decide what an expired token means.
// All decryption and parse failures collapse into ErrDecryption.
func (c *Codec) Open(kind Kind, sealed string) (Claims, error) {
	sealer, ok := c.sealers[kind]
	if !ok {
		return Claims{}, ErrUnknownKind
	}
	payload, err := sealer.Unseal(sealed)
	if err != nil {
		return Claims{}, ErrDecryption
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrDecryption
	}
	return claims, nil
}

// Now exposes the codec's clock so callers share the same time source
// when checking expiry.
func (c *Codec) Now() time.Time {
	return c.clock.Now()
}
