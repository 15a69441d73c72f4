package resource

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Subresource integrity errors.
var (
	ErrUnsupportedAlgorithm = errors.New("unsupported integrity algorithm")
	ErrMalformedIntegrity   = errors.New("malformed integrity value")
	ErrIntegrityMismatch    = errors.New("integrity mismatch")
)

// parseIntegrity splits an "alg-base64digest" subresource integrity value.
func parseIntegrity(integrity string) (string, []byte, error) {
	alg, encoded, ok := strings.Cut(integrity, "-")
	if !ok || encoded == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrMalformedIntegrity, integrity)
	}
	switch alg {
	case "sha256", "sha384", "sha512":
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
	digest, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedIntegrity, err)
	}
	return alg, digest, nil
}

// VerifyIntegrity checks fetched bytes against a subresource integrity value.
func VerifyIntegrity(data []byte, integrity string) error {
	alg, want, err := parseIntegrity(integrity)
	if err != nil {
		return err
	}

	var got []byte
	switch alg {
	case "sha256":
		sum := sha256.Sum256(data)
		got = sum[:]
	case "sha384":
		sum := sha512.Sum384(data)
		got = sum[:]
	case "sha512":
		sum := sha512.Sum512(data)
		got = sum[:]
	}

	if len(want) != len(got) || subtle.ConstantTimeCompare(want, got) != 1 {
		return fmt.Errorf("%w for %s digest", ErrIntegrityMismatch, alg)
	}
	return nil
}
