// Package scrypto implements the authenticated-encryption envelope: PBKDF2
// key derivation, AES-256-GCM encrypt/decrypt, optional gzip compression,
// and the versioned binary framing that ties salt, nonce, flags, and
// ciphertext into one self-describing buffer. See envelope.go for the
// framing state machine.
package scrypto

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/faanross/stegocrypt/internal/spec"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// DeriveKey stretches password+salt into a KeySize-byte AES key via
// PBKDF2-HMAC-SHA256. iterations should be spec.IterDefault or
// spec.IterHighSec, selected by the envelope's high-security flag.
func DeriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, spec.KeySize, sha256.New)
}

// GetSecurePassword prompts on stdin with echo disabled, via
// golang.org/x/term.
func GetSecurePassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("password read failed: %w", err)
	}
	return password, nil
}
