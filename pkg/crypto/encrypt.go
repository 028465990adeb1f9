package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2Iterations is default iteration for KDF.
	PBKDF2Iterations = 1000000
	// PBKDF2KeyLen is default key length.
	PBKDF2KeyLen = 32
)

// EncryptedSecret holds an AES-GCM encrypted secret with its KDF parameters.
type EncryptedSecret struct {
	Iterations int    `json:"iterations"`
	Salt       string `json:"salt"`
	CipherText string `json:"cipherText"`
	IV         string `json:"iv"`
	Tag        string `json:"tag"`
	Version    string `json:"version"`
}

// EncryptWithPassword encrypts the secret with a key derived from the password.
func EncryptWithPassword(secret []byte, password string, iterations int) (*EncryptedSecret, error) {
	iv := make([]byte, 12)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, PBKDF2KeyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	cipherTextWithTag := aesgcm.Seal(nil, iv, secret, nil)
	cipherText := cipherTextWithTag[0 : len(cipherTextWithTag)-16]
	tag := cipherTextWithTag[len(cipherTextWithTag)-16:]
	encrypted := &EncryptedSecret{
		Iterations: iterations,
		Salt:       hex.EncodeToString(salt),
		CipherText: hex.EncodeToString(cipherText),
		IV:         hex.EncodeToString(iv),
		Tag:        hex.EncodeToString(tag),
		Version:    "1",
	}
	return encrypted, nil
}

// DecryptWithPassword decrypts the encrypted secret with the password.
func DecryptWithPassword(encrypted *EncryptedSecret, password string) ([]byte, error) {
	if encrypted == nil {
		return nil, errors.New("encrypted secret cannot be nil")
	}
	iterations := encrypted.Iterations
	if iterations == 0 {
		iterations = PBKDF2Iterations
	}
	salt, err := hex.DecodeString(encrypted.Salt)
	if err != nil {
		return nil, err
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, PBKDF2KeyLen, sha256.New)
	tag, err := hex.DecodeString(encrypted.Tag)
	if err != nil {
		return nil, err
	}
	iv, err := hex.DecodeString(encrypted.IV)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	cipherText, err := hex.DecodeString(encrypted.CipherText)
	if err != nil {
		return nil, err
	}
	cipherText = append(cipherText, tag...)
	return aesgcm.Open(nil, iv, cipherText, nil)
}
