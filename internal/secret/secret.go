// Package secret encrypts short values (such as document locations handed
// to the viewer) with Blowfish and protects them with a salted control hash.
package secret

import (
	"crypto/cipher"
	"crypto/md5"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/blowfish"
)

var (
	ErrInvalidInput = errors.New("invalid parameters given for decryption")
	ErrNoKey        = errors.New("no encryption key configured")
	ErrHashMismatch = errors.New("control hash does not match")
)

const (
	// maxKeyLen is the longest key Blowfish accepts
	maxKeyLen = 56
	// minKeyLen is OpenSSL's default Blowfish key length; shorter keys are
	// zero-padded to it so existing BF-CFB values still decrypt
	minKeyLen = 16
)

// Sealed is an encrypted value together with its control hash
type Sealed struct {
	Encrypted string `json:"encrypted"`
	Hash      string `json:"hash"`
}

func newStream(key string, decrypt bool) (cipher.Stream, error) {
	if key == "" {
		return nil, ErrNoKey
	}
	k := []byte(key)
	if len(k) > maxKeyLen {
		k = k[:maxKeyLen]
	}
	if len(k) < minKeyLen {
		padded := make([]byte, minKeyLen)
		copy(padded, k)
		k = padded
	}
	block, err := blowfish.NewCipher(k)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	sum := md5.Sum([]byte(key))
	iv := []byte(hex.EncodeToString(sum[:])[:blowfish.BlockSize])
	if decrypt {
		return cipher.NewCFBDecrypter(block, iv), nil
	}
	return cipher.NewCFBEncrypter(block, iv), nil
}

// controlHash returns salt followed by the last ten hex characters of
// SHA1(salt + value)
func controlHash(salt, value string) string {
	sum := sha1.Sum([]byte(salt + value))
	digest := hex.EncodeToString(sum[:])
	return salt + digest[len(digest)-10:]
}

// newSalt returns ten hex characters derived from a random UUID
func newSalt() string {
	sum := md5.Sum([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])[:10]
}

// Encrypt encrypts plaintext with key and returns it with a fresh control hash
func Encrypt(key, plaintext string) (Sealed, error) {
	stream, err := newStream(key, false)
	if err != nil {
		return Sealed{}, err
	}
	out := make([]byte, len(plaintext))
	stream.XORKeyStream(out, []byte(plaintext))
	return Sealed{
		Encrypted: base64.StdEncoding.EncodeToString(out),
		Hash:      controlHash(newSalt(), plaintext),
	}, nil
}

// Decrypt reverses Encrypt and verifies the control hash
func Decrypt(key, encrypted, hash string) (string, error) {
	if encrypted == "" || hash == "" {
		return "", ErrInvalidInput
	}
	if len(hash) < 10 {
		return "", ErrHashMismatch
	}
	stream, err := newStream(key, true)
	if err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	out := make([]byte, len(raw))
	stream.XORKeyStream(out, raw)
	plaintext := string(out)
	if controlHash(hash[:10], plaintext) != hash {
		return "", ErrHashMismatch
	}
	return plaintext, nil
}
