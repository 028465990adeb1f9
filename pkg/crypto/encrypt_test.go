package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptSecret(t *testing.T) {
	secret := []byte("tenure signing key")
	encrypted, err := EncryptWithPassword(secret, "passwd", 10)
	require.NoError(t, err)
	assert.Equal(t, "1", encrypted.Version)
	assert.Equal(t, 10, encrypted.Iterations)

	decrypted, err := DecryptWithPassword(encrypted, "passwd")
	require.NoError(t, err)
	assert.Equal(t, secret, decrypted)
}

func TestDecryptWrongPassword(t *testing.T) {
	encrypted, err := EncryptWithPassword([]byte("secret"), "passwd", 10)
	require.NoError(t, err)

	_, err = DecryptWithPassword(encrypted, "wrong")
	assert.Error(t, err)
}

func TestDecryptNil(t *testing.T) {
	_, err := DecryptWithPassword(nil, "passwd")
	assert.Error(t, err)
}
