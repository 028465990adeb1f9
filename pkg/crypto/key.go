package crypto

import (
	"crypto/hmac"
	"crypto/sha512"

	"github.com/tyler-smith/go-bip39"
)

var masterSecret = []byte("ember seed")

// GenerateMnemonic returns a new 24 words mnemonic passphrase.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// MnemonicToPrivateKey derives a secp256k1 private key from the mnemonic given.
func MnemonicToPrivateKey(mnemonic, password string) ([]byte, error) {
	seed := bip39.NewSeed(mnemonic, password)
	hmacHash := hmac.New(sha512.New, masterSecret)
	if _, err := hmacHash.Write(seed); err != nil {
		return nil, err
	}
	digest := hmacHash.Sum(nil)
	return digest[:PrivateKeyLength], nil
}
