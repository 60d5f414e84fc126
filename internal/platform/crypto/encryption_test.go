package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRoundTrip(t *testing.T) {
	svc, err := New("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	require.True(t, svc.Configured())

	sealed, err := svc.EncryptString("111-11-1111")
	require.NoError(t, err)
	assert.NotEqual(t, []byte("111-11-1111"), sealed)

	plain, err := svc.DecryptString(sealed)
	require.NoError(t, err)
	assert.Equal(t, "111-11-1111", plain)
}

func TestServiceWithoutKeyPassesThrough(t *testing.T) {
	svc, err := New("")
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	sealed, err := svc.EncryptString("111-11-1111")
	require.NoError(t, err)
	assert.Equal(t, []byte("111-11-1111"), sealed)

	var nilSvc *Service
	plain, err := nilSvc.DecryptString(sealed)
	require.NoError(t, err)
	assert.Equal(t, "111-11-1111", plain)
}

func TestNewRejectsShortKey(t *testing.T) {
	_, err := New("too-short")
	require.Error(t, err)
}

func TestDecryptRejectsTruncatedCiphertext(t *testing.T) {
	svc, err := New("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	_, err = svc.Decrypt([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrCiphertextTooShort)
}
