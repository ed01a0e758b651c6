package pasetox

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

// Token format tags. A Maker always produces v4.public tokens; the tags
// are fixed at construction and exposed for diagnostics.
const (
	VersionV4     = "v4"
	PurposePublic = "public"
)

// Key sizes fixed by the Ed25519 signature scheme. The private key is
// the 64-byte seed-and-public-key concatenation, the public key is the
// 32-byte verification half.
const (
	PrivateKeySize = 64
	PublicKeySize  = 32
)

// Maker signs claim sets into v4.public tokens and verifies presented
// tokens with its own public key. It is immutable after construction
// and safe for concurrent use.
type Maker struct {
	secretKey paseto.V4AsymmetricSecretKey
	verifier  Verifier
}

// NewMaker builds a Maker from 64-byte Ed25519 keypair bytes. The key
// material is validated structurally; malformed input is rejected
// without panicking.
func NewMaker(privateKey []byte) (*Maker, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, newError(ErrCodeInvalidKey, fmt.Errorf("private key must be %d bytes, got %d", PrivateKeySize, len(privateKey)))
	}
	secretKey, err := paseto.NewV4AsymmetricSecretKeyFromBytes(privateKey)
	if err != nil {
		return nil, newError(ErrCodeInvalidKey, err)
	}
	publicKey := secretKey.Public()
	return &Maker{
		secretKey: secretKey,
		verifier: Verifier{
			publicKey:      publicKey,
			publicKeyBytes: publicKey.ExportBytes(),
		},
	}, nil
}

// NewKeypair generates a fresh random Ed25519 keypair and returns the
// 64-byte private key and 32-byte public key.
func NewKeypair() (privateKey, publicKey []byte) {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	return secretKey.ExportBytes(), secretKey.Public().ExportBytes()
}

// PublicKeyBytes returns a copy of the public verification key for
// out-of-band distribution to verifiers.
func (m *Maker) PublicKeyBytes() []byte {
	return m.verifier.PublicKeyBytes()
}

// Version returns the token format version tag.
func (m *Maker) Version() string {
	return VersionV4
}

// Purpose returns the token format purpose tag.
func (m *Maker) Purpose() string {
	return PurposePublic
}

// CreateToken validates the claim set and signs it into a token string.
// Claims are processed in name-sorted order and the first invalid claim
// aborts issuance: reserved string claims must hold strings, reserved
// time claims must hold RFC3339 strings, and custom claims must be
// accepted by the token engine.
func (m *Maker) CreateToken(claims Claims) (string, error) {
	token := paseto.NewToken()
	for name, value := range claims.All() {
		switch name {
		case ClaimIssuer:
			issuer, ok := value.(string)
			if !ok {
				return "", invalidClaim(name)
			}
			token.SetIssuer(issuer)
		case ClaimSubject:
			subject, ok := value.(string)
			if !ok {
				return "", invalidClaim(name)
			}
			token.SetSubject(subject)
		case ClaimAudience:
			audience, ok := value.(string)
			if !ok {
				return "", invalidClaim(name)
			}
			token.SetAudience(audience)
		case ClaimTokenIdentifier:
			identifier, ok := value.(string)
			if !ok {
				return "", invalidClaim(name)
			}
			token.SetJti(identifier)
		case ClaimExpiration:
			ts, err := timestampClaim(name, value)
			if err != nil {
				return "", err
			}
			token.SetExpiration(ts)
		case ClaimNotBefore:
			ts, err := timestampClaim(name, value)
			if err != nil {
				return "", err
			}
			token.SetNotBefore(ts)
		case ClaimIssuedAt:
			ts, err := timestampClaim(name, value)
			if err != nil {
				return "", err
			}
			token.SetIssuedAt(ts)
		default:
			if err := token.Set(name, value); err != nil {
				return "", newError(ErrCodeInvalidClaim, fmt.Errorf("claim %q: %w", name, err))
			}
		}
	}
	return token.V4Sign(m.secretKey, nil), nil
}

// VerifyToken checks the token's signature and time-bound claims and
// returns the verified claim set. Optional expectations (issuer,
// audience, allowed subjects, clock skew) apply on top of signature
// verification.
func (m *Maker) VerifyToken(token string, opts ...VerifyOption) (Claims, error) {
	return m.verifier.VerifyToken(token, opts...)
}

var claimDescriptions = map[string]string{
	ClaimIssuer:          "issuer",
	ClaimSubject:         "subject",
	ClaimAudience:        "audience",
	ClaimExpiration:      "expiration",
	ClaimNotBefore:       "not before",
	ClaimIssuedAt:        "issued at",
	ClaimTokenIdentifier: "token identifier",
}

func invalidClaim(name string) error {
	return newError(ErrCodeInvalidClaim, fmt.Errorf("invalid %s claim", claimDescriptions[name]))
}

func timestampClaim(name string, value any) (time.Time, error) {
	raw, ok := value.(string)
	if !ok {
		return time.Time{}, invalidClaim(name)
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, newError(ErrCodeInvalidClaim, fmt.Errorf("%s claim: %w", claimDescriptions[name], err))
	}
	return ts, nil
}
