package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	envelopeVersion = 1
	saltLen         = 16
	keyLen          = 32 // AES-256
)

// KDFParams are the Argon2id cost parameters. They are stored next to the
// ciphertext so a store keeps opening after the defaults change.
type KDFParams struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"` // KiB
	Threads uint8  `json:"threads"`
}

// DefaultKDF costs 64 MiB per derivation.
var DefaultKDF = KDFParams{Time: 1, Memory: 64 * 1024, Threads: 4}

var errShortCiphertext = errors.New("ciphertext too short")

func (p KDFParams) valid() bool {
	return p.Time > 0 && p.Memory >= 8*uint32(p.Threads) && p.Threads > 0
}

// deriveKey derives an AES-256 key from password and salt.
func (p KDFParams) deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, keyLen)
}

// envelope is the on-disk form of the store.
type envelope struct {
	Version int       `json:"version"`
	KDF     KDFParams `json:"kdf"`
	Salt    []byte    `json:"salt"`
	Data    []byte    `json:"data"`
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// additionalData binds the ciphertext to the envelope version.
func additionalData(version int) []byte {
	return []byte(fmt.Sprintf("invdash-sessions/v%d", version))
}

// seal encrypts plaintext and returns nonce followed by ciphertext.
func seal(key, plaintext []byte, version int) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize(), gcm.NonceSize()+len(plaintext)+gcm.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, additionalData(version)), nil
}

// open reverses seal.
func open(key, data []byte, version int) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, errShortCiphertext
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, additionalData(version))
}
