package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var integrityPayload = []byte(`console.log("analytics");`)

func TestVerifyIntegrity(t *testing.T) {
	tests := []struct {
		name      string
		integrity string
	}{
		{"sha256", "sha256-O+X9NZqyhn2+2lnf4+TTsnHK6B7LE67vMzmU5wmV7eE="},
		{"sha384", "sha384-jfbSzCHDMk3R0e0K0TpP+mM3D0Iyv7w4ZlIjkqzXdNaVW/12KXZPQOlKvpm/rOqU"},
		{"sha512", "sha512-UZNku8c/xxF3z2XY92BwtdJSy6rzRQ4fJGvM0cp6PeCpDT8XDQQPcM0MCa/HhtQPIjqL6gvqblvsgEeLcCWeyQ=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, VerifyIntegrity(integrityPayload, tt.integrity))
		})
	}
}

func TestVerifyIntegrityMismatch(t *testing.T) {
	err := VerifyIntegrity([]byte("tampered"), "sha256-O+X9NZqyhn2+2lnf4+TTsnHK6B7LE67vMzmU5wmV7eE=")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntegrityMismatch)
}

func TestVerifyIntegrityRejectsUnsupportedAlgorithm(t *testing.T) {
	err := VerifyIntegrity(integrityPayload, "md5-AAAA")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestVerifyIntegrityRejectsMalformedValues(t *testing.T) {
	for _, bad := range []string{"", "sha256", "sha256-", "sha256-!!!not base64!!!"} {
		err := VerifyIntegrity(integrityPayload, bad)
		assert.ErrorIs(t, err, ErrMalformedIntegrity, "value %q", bad)
	}
}
