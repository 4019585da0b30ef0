package session

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Keys are the independent secrets derived from SESSION_SECRET.  Deriving
// them keeps one operator-facing secret while never reusing key material
// between the session token and the flash cookie.
type Keys struct {
	Signing    []byte // HS256 key of the session token
	FlashHash  []byte // HMAC key of the flash cookie
	FlashBlock []byte // AES-256 key of the flash cookie
}

// DeriveKeys expands secret with HKDF-SHA256.
func DeriveKeys(secret string) (Keys, error) {
	if secret == "" {
		return Keys{}, fmt.Errorf("derive keys: empty secret")
	}
	kdf := hkdf.New(sha256.New, []byte(secret), []byte("limpopo-connect-web"), []byte("session-keys-v1"))
	k := Keys{
		Signing:    make([]byte, 32),
		FlashHash:  make([]byte, 32),
		FlashBlock: make([]byte, 32),
	}
	for _, b := range [][]byte{k.Signing, k.FlashHash, k.FlashBlock} {
		if _, err := io.ReadFull(kdf, b); err != nil {
			return Keys{}, fmt.Errorf("derive keys: %w", err)
		}
	}
	return k, nil
}
