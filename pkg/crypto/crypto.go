// Package crypto provides crypto related utility functions.
//
// It supports recoverable secp256k1 ECDSA for signatures, sha256 for hash,
// and pbkdf2 for encryption.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	HashLength = 32
	// PublicKeyLength is the length of a compressed secp256k1 public key.
	PublicKeyLength  = 33
	PrivateKeyLength = 32
	// SignatureLength is the length of a compact recoverable signature.
	SignatureLength = 65
	AddressLength   = 20
)

var (
	ErrInvalidSignatureLength = errors.New("signature must be 65 bytes")
	ErrInvalidPrivateKey      = errors.New("private key must be 32 bytes")
)

func RandomBytes(size int) []byte {
	r := make([]byte, size)
	if _, err := rand.Read(r); err != nil {
		panic(err)
	}
	return r
}

func Hash(key []byte) []byte {
	hasher := sha256.New()
	hasher.Write(key)
	return hasher.Sum(nil)
}

// GetKeys derives a deterministic key pair from the passphrase.
func GetKeys(passphrase string) ([]byte, []byte, error) {
	seed := Hash([]byte(passphrase))
	privateKey := secp256k1.PrivKeyFromBytes(seed)
	publicKey := privateKey.PubKey().SerializeCompressed()
	return publicKey, privateKey.Serialize(), nil
}

// GetPublicKey returns the compressed public key of the private key given.
func GetPublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != PrivateKeyLength {
		return nil, ErrInvalidPrivateKey
	}
	key := secp256k1.PrivKeyFromBytes(privateKey)
	return key.PubKey().SerializeCompressed(), nil
}

// GetAddress returns the 20 bytes address of the compressed public key.
func GetAddress(publicKey []byte) []byte {
	publicKeyHash := Hash(publicKey)
	return publicKeyHash[:AddressLength]
}

// Sign creates a compact recoverable signature over the 32 bytes message hash.
func Sign(privateKey, messageHash []byte) ([]byte, error) {
	if len(privateKey) != PrivateKeyLength {
		return nil, ErrInvalidPrivateKey
	}
	key := secp256k1.PrivKeyFromBytes(privateKey)
	signature := secpecdsa.SignCompact(key, messageHash, true)
	return signature, nil
}

// RecoverPublicKey returns the compressed public key which created the
// signature over the message hash.
func RecoverPublicKey(signature, messageHash []byte) ([]byte, error) {
	if len(signature) != SignatureLength {
		return nil, ErrInvalidSignatureLength
	}
	publicKey, _, err := secpecdsa.RecoverCompact(signature, messageHash)
	if err != nil {
		return nil, err
	}
	return publicKey.SerializeCompressed(), nil
}

// VerifySignature recovers the signer from the signature and compares it
// against the public key given.
func VerifySignature(publicKey, signature, messageHash []byte) error {
	recovered, err := RecoverPublicKey(signature, messageHash)
	if err != nil {
		return err
	}
	if string(recovered) != string(publicKey) {
		return fmt.Errorf("invalid signature %x by %x", signature, publicKey)
	}
	return nil
}
