package pasetox

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

// Verifier checks v4.public tokens using only the 32-byte public half
// of a keypair, for parties that never hold the signing key. It is
// immutable after construction and safe for concurrent use.
type Verifier struct {
	publicKey      paseto.V4AsymmetricPublicKey
	publicKeyBytes []byte
}

// NewVerifier builds a Verifier from 32-byte Ed25519 public key bytes.
func NewVerifier(publicKey []byte) (*Verifier, error) {
	if len(publicKey) != PublicKeySize {
		return nil, newError(ErrCodeInvalidKey, fmt.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(publicKey)))
	}
	key, err := paseto.NewV4AsymmetricPublicKeyFromBytes(publicKey)
	if err != nil {
		return nil, newError(ErrCodeInvalidKey, err)
	}
	return &Verifier{
		publicKey:      key,
		publicKeyBytes: key.ExportBytes(),
	}, nil
}

// PublicKeyBytes returns a copy of the public verification key.
func (v *Verifier) PublicKeyBytes() []byte {
	return append([]byte(nil), v.publicKeyBytes...)
}

// Version returns the token format version tag.
func (v *Verifier) Version() string {
	return VersionV4
}

// Purpose returns the token format purpose tag.
func (v *Verifier) Purpose() string {
	return PurposePublic
}

type verifyParams struct {
	issuer          string
	audience        string
	allowedSubjects map[string]struct{}
	clockSkew       time.Duration
}

// VerifyOption customizes the expectations applied by a single
// VerifyToken call.
type VerifyOption func(*verifyParams)

// WithExpectedIssuer requires the token's issuer claim to equal issuer.
func WithExpectedIssuer(issuer string) VerifyOption {
	return func(p *verifyParams) {
		p.issuer = issuer
	}
}

// WithExpectedAudience requires the token's audience claim to equal
// audience.
func WithExpectedAudience(audience string) VerifyOption {
	return func(p *verifyParams) {
		p.audience = audience
	}
}

// WithAllowedSubjects restricts the token's subject claim to the given
// set.
func WithAllowedSubjects(subjects ...string) VerifyOption {
	return func(p *verifyParams) {
		p.allowedSubjects = make(map[string]struct{}, len(subjects))
		for _, subject := range subjects {
			p.allowedSubjects[subject] = struct{}{}
		}
	}
}

// WithClockSkew tolerates the given leeway when checking time-bound
// claims. The default is zero.
func WithClockSkew(skew time.Duration) VerifyOption {
	return func(p *verifyParams) {
		p.clockSkew = skew
	}
}

// VerifyToken parses the token against the public key, enforces the
// time-bound claims that are present, applies any configured
// expectations, and returns the verified claim set.
func (v *Verifier) VerifyToken(token string, opts ...VerifyOption) (Claims, error) {
	var params verifyParams
	for _, opt := range opts {
		opt(&params)
	}

	parser := paseto.NewParserWithoutExpiryCheck()
	parsed, err := parser.ParseV4Public(v.publicKey, token, nil)
	if err != nil {
		return Claims{}, newError(ErrCodeVerification, err)
	}

	payload := parsed.Claims()
	if err := checkTimeClaims(parsed, payload, params.clockSkew); err != nil {
		return Claims{}, err
	}

	claims, err := ClaimsFromPayload(payload)
	if err != nil {
		return Claims{}, err
	}
	if err := params.check(claims); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func checkTimeClaims(token *paseto.Token, payload map[string]any, skew time.Duration) error {
	now := time.Now()
	if _, ok := payload[ClaimExpiration]; ok {
		exp, err := token.GetExpiration()
		if err != nil {
			return newError(ErrCodeVerification, err)
		}
		if now.After(exp.Add(skew)) {
			return newError(ErrCodeExpired, fmt.Errorf("token expired at %s", exp.Format(time.RFC3339)))
		}
	}
	if _, ok := payload[ClaimNotBefore]; ok {
		nbf, err := token.GetNotBefore()
		if err != nil {
			return newError(ErrCodeVerification, err)
		}
		if now.Add(skew).Before(nbf) {
			return newError(ErrCodeNotYetValid, fmt.Errorf("token not valid before %s", nbf.Format(time.RFC3339)))
		}
	}
	if _, ok := payload[ClaimIssuedAt]; ok {
		iat, err := token.GetIssuedAt()
		if err != nil {
			return newError(ErrCodeVerification, err)
		}
		if now.Add(skew).Before(iat) {
			return newError(ErrCodeNotYetValid, fmt.Errorf("token issued in the future at %s", iat.Format(time.RFC3339)))
		}
	}
	return nil
}

func (p verifyParams) check(claims Claims) error {
	if p.issuer != "" {
		issuer, _ := claims.GetIssuer()
		if issuer != p.issuer {
			return newError(ErrCodeInvalidIssuer, fmt.Errorf("issuer mismatch: got %q, want %q", issuer, p.issuer))
		}
	}
	if p.audience != "" {
		audience, _ := claims.GetAudience()
		if audience != p.audience {
			return newError(ErrCodeInvalidAudience, fmt.Errorf("audience mismatch: got %q, want %q", audience, p.audience))
		}
	}
	if len(p.allowedSubjects) > 0 {
		subject, _ := claims.GetSubject()
		if _, ok := p.allowedSubjects[subject]; !ok {
			return newError(ErrCodeSubjectNotAllowed, fmt.Errorf("subject %q not allowed", subject))
		}
	}
	return nil
}
