package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyGeneration(t *testing.T) {
	passphrase := "endless focus guilt bronze hold economy bulk parent soon tower cement venue"
	publicKey, privateKey, err := GetKeys(passphrase)
	require.NoError(t, err)
	assert.Len(t, publicKey, PublicKeyLength)
	assert.Len(t, privateKey, PrivateKeyLength)

	publicKeyAgain, privateKeyAgain, err := GetKeys(passphrase)
	require.NoError(t, err)
	assert.Equal(t, publicKey, publicKeyAgain)
	assert.Equal(t, privateKey, privateKeyAgain)

	otherPublicKey, _, err := GetKeys("another passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, publicKey, otherPublicKey)

	// The second value is the signing key. The first one is the compressed
	// public key and must be rejected as signing material.
	_, err = Sign(privateKey, Hash([]byte("payload")))
	assert.NoError(t, err)
	_, err = Sign(publicKey, Hash([]byte("payload")))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestGetPublicKeyInvalidLength(t *testing.T) {
	_, err := GetPublicKey([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestGetAddress(t *testing.T) {
	publicKey, _, err := GetKeys("address passphrase")
	require.NoError(t, err)
	address := GetAddress(publicKey)
	assert.Len(t, address, AddressLength)
	assert.Equal(t, Hash(publicKey)[:AddressLength], address)
}

func TestSignature(t *testing.T) {
	publicKey, privateKey, err := GetKeys("signing passphrase")
	require.NoError(t, err)
	messageHash := Hash([]byte("message"))

	signature, err := Sign(privateKey, messageHash)
	require.NoError(t, err)
	assert.Len(t, signature, SignatureLength)

	recovered, err := RecoverPublicKey(signature, messageHash)
	require.NoError(t, err)
	assert.Equal(t, []byte(publicKey), recovered)

	assert.NoError(t, VerifySignature(publicKey, signature, messageHash))
}

func TestSignatureDeterministic(t *testing.T) {
	_, privateKey, err := GetKeys("deterministic passphrase")
	require.NoError(t, err)
	messageHash := Hash([]byte("message"))

	first, err := Sign(privateKey, messageHash)
	require.NoError(t, err)
	second, err := Sign(privateKey, messageHash)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestVerifySignatureMismatch(t *testing.T) {
	_, privateKey, err := GetKeys("signer")
	require.NoError(t, err)
	otherPublicKey, _, err := GetKeys("not the signer")
	require.NoError(t, err)
	messageHash := Hash([]byte("message"))

	signature, err := Sign(privateKey, messageHash)
	require.NoError(t, err)
	assert.Error(t, VerifySignature(otherPublicKey, signature, messageHash))

	// A signature over a different digest recovers a different key.
	assert.Error(t, VerifySignature(otherPublicKey, signature, Hash([]byte("other"))))
}

func TestSignInvalidInput(t *testing.T) {
	_, err := Sign([]byte{1}, Hash([]byte("message")))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = RecoverPublicKey([]byte{1, 2, 3}, Hash([]byte("message")))
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)
}

func TestRandomBytes(t *testing.T) {
	first := RandomBytes(32)
	second := RandomBytes(32)
	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
}
