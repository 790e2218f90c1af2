package scrypto

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"

	"github.com/faanross/stegocrypt/internal/spec"
)

// ErrDecryptFailure is the single opaque error every envelope failure mode
// surfaces as: wrong password, truncated ciphertext, tampered bytes,
// malformed salt length, or decompression failure. These must stay
// indistinguishable from each other -- a distinct message for bad-password
// cases is exactly the kind of oracle this format must not expose.
var ErrDecryptFailure = errors.New("Decryption failed - wrong password or corrupted data")

// SealOptions controls envelope framing on encrypt.
type SealOptions struct {
	Compress     bool
	HighSecurity bool
}

// Seal compresses (optionally), derives a key from password with a fresh
// random salt, encrypts plaintext under AES-256-GCM with a fresh random
// nonce, and frames the result as
// [flags][saltLen u32-LE][salt][nonce][ciphertext+tag].
func Seal(plaintext, password []byte, opts SealOptions) ([]byte, error) {
	data := plaintext
	var flags byte
	if opts.Compress {
		compressed, err := gzipCompress(plaintext)
		if err == nil && len(compressed) < len(plaintext) {
			data = compressed
			flags |= spec.FlagCompressed
		}
	}
	if opts.HighSecurity {
		flags |= spec.FlagHighSec
	}

	salt := make([]byte, spec.SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	nonce := make([]byte, spec.NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	iterations := spec.IterDefault
	if opts.HighSecurity {
		iterations = spec.IterHighSec
	}
	key := DeriveKey(password, salt, iterations)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, 1+4+len(salt)+len(nonce)+len(ciphertext))
	out = append(out, flags)
	var saltLenBuf [4]byte
	binary.LittleEndian.PutUint32(saltLenBuf[:], uint32(len(salt)))
	out = append(out, saltLenBuf[:]...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// Open reverses Seal. Every failure -- malformed framing, wrong salt
// length, short ciphertext, wrong password (GCM auth failure), or
// decompression failure -- returns ErrDecryptFailure and nothing else, to
// preserve the uniform-error invariant.
func Open(envelope, password []byte) ([]byte, error) {
	if len(envelope) < 1+4 {
		return nil, ErrDecryptFailure
	}
	flags := envelope[0]
	saltLen := binary.LittleEndian.Uint32(envelope[1:5])
	if saltLen != spec.SaltSize {
		return nil, ErrDecryptFailure
	}

	pos := 5
	if pos+int(saltLen) > len(envelope) {
		return nil, ErrDecryptFailure
	}
	salt := envelope[pos : pos+int(saltLen)]
	pos += int(saltLen)

	if pos+spec.NonceSize > len(envelope) {
		return nil, ErrDecryptFailure
	}
	nonce := envelope[pos : pos+spec.NonceSize]
	pos += spec.NonceSize

	ciphertext := envelope[pos:]
	if len(ciphertext) < spec.TagSize {
		return nil, ErrDecryptFailure
	}

	iterations := spec.IterDefault
	if flags&spec.FlagHighSec != 0 {
		iterations = spec.IterHighSec
	}
	key := DeriveKey(password, salt, iterations)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrDecryptFailure
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptFailure
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailure
	}

	if flags&spec.FlagCompressed != 0 {
		decompressed, err := gzipDecompress(plaintext)
		if err != nil {
			return nil, ErrDecryptFailure
		}
		return decompressed, nil
	}
	return plaintext, nil
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
