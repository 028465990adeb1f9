package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmberHQ/ember-engine/pkg/crypto"
)

const testMnemonic = "endless focus guilt bronze hold economy bulk parent soon tower cement venue"

func TestGenerateProducerKeys(t *testing.T) {
	keys, err := generateProducerKeys(testMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, keys.Mnemonic)
	assert.Len(t, []byte(keys.PrivateKey), crypto.PrivateKeyLength)
	assert.Len(t, []byte(keys.PublicKey), crypto.PublicKeyLength)
	assert.Equal(t, crypto.GetAddress(keys.PublicKey), []byte(keys.Address))
	assert.Nil(t, keys.Encrypted)

	again, err := generateProducerKeys(testMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, keys.PrivateKey, again.PrivateKey)
}

func TestGenerateProducerKeysEncrypted(t *testing.T) {
	keys, err := generateProducerKeys(testMnemonic, "secret password")
	require.NoError(t, err)
	assert.Nil(t, keys.PrivateKey)
	require.NotNil(t, keys.Encrypted)

	decrypted, err := crypto.DecryptWithPassword(keys.Encrypted, "secret password")
	require.NoError(t, err)
	expected, err := crypto.MnemonicToPrivateKey(testMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, expected, decrypted)

	publicKey, err := crypto.GetPublicKey(decrypted)
	require.NoError(t, err)
	assert.Equal(t, []byte(keys.PublicKey), publicKey)
}
