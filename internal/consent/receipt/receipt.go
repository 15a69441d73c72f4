// Package receipt issues tamper-evident consent receipts. Downstream
// collaborators can verify a visitor's recorded decision without access to
// the consent cookie.
package receipt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"consentgate/internal/consent/models"
	dErrors "consentgate/pkg/domain-errors"
)

const issuerName = "consentgate"

// Claims is the signed payload of one consent receipt.
type Claims struct {
	Status        models.Decision `json:"status"`
	DecisionAt    time.Time       `json:"decisionAt"`
	SchemaVersion string          `json:"schemaVersion"`
	jwt.RegisteredClaims
}

// Issuer signs receipts for persisted consent records.
type Issuer struct {
	key []byte
	now func() time.Time
}

// IssuerOption configures the Issuer.
type IssuerOption func(*Issuer)

// WithClock overrides the time source for deterministic tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer constructs an Issuer with the given HMAC signing key. An empty
// key returns nil; callers treat the receipt collaborator as absent and the
// rest of the consent flow operates headlessly.
func NewIssuer(key string, opts ...IssuerOption) *Issuer {
	if key == "" {
		return nil
	}
	i := &Issuer{key: []byte(key), now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a receipt for the given record.
func (i *Issuer) Issue(record *models.Record) (string, error) {
	if record == nil || !record.Status.CanPersist() {
		return "", dErrors.New(dErrors.CodeMissingConsent, "no decision to issue a receipt for")
	}

	now := i.now()
	claims := Claims{
		Status:        record.Status,
		DecisionAt:    record.Timestamp,
		SchemaVersion: record.SchemaVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuerName,
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign consent receipt")
	}
	return signed, nil
}

// Verify parses and validates a receipt, returning its claims.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "unexpected signing method")
		}
		return i.key, nil
	}, jwt.WithIssuer(issuerName))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid consent receipt")
	}
	if !token.Valid {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid consent receipt")
	}
	return claims, nil
}
