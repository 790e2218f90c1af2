package scrypto

import (
	"bytes"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	cases := []SealOptions{
		{Compress: false, HighSecurity: false},
		{Compress: true, HighSecurity: false},
		{Compress: false, HighSecurity: true},
		{Compress: true, HighSecurity: true},
	}
	plaintext := []byte("the secret message, repeated for compressibility. " +
		"the secret message, repeated for compressibility.")
	password := []byte("correcthorsebatterystaple1")

	for _, opts := range cases {
		env, err := Seal(plaintext, password, opts)
		if err != nil {
			t.Fatalf("Seal(%+v): %v", opts, err)
		}
		got, err := Open(env, password)
		if err != nil {
			t.Fatalf("Open(%+v): %v", opts, err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("round trip mismatch for %+v: got %q want %q", opts, got, plaintext)
		}
	}
}

func TestOpenWrongPasswordUniformError(t *testing.T) {
	env, err := Seal([]byte("data"), []byte("rightpassword"), SealOptions{})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	_, err1 := Open(env, []byte("wrongpassword"))
	if err1 != ErrDecryptFailure {
		t.Fatalf("expected ErrDecryptFailure, got %v", err1)
	}

	truncated := env[:len(env)-5]
	_, err2 := Open(truncated, []byte("rightpassword"))
	if err2 != ErrDecryptFailure {
		t.Fatalf("expected ErrDecryptFailure for truncated ciphertext, got %v", err2)
	}

	tampered := append([]byte(nil), env...)
	tampered[len(tampered)-1] ^= 0xFF
	_, err3 := Open(tampered, []byte("rightpassword"))
	if err3 != ErrDecryptFailure {
		t.Fatalf("expected ErrDecryptFailure for tampered last byte, got %v", err3)
	}

	badSaltLen := append([]byte(nil), env...)
	badSaltLen[1] = 0xFF
	_, err4 := Open(badSaltLen, []byte("rightpassword"))
	if err4 != ErrDecryptFailure {
		t.Fatalf("expected ErrDecryptFailure for bad salt length, got %v", err4)
	}

	if err1.Error() != err2.Error() || err2.Error() != err3.Error() || err3.Error() != err4.Error() {
		t.Fatal("decrypt failure messages are not identical across failure modes")
	}
}

func TestOpenRejectsShortBuffer(t *testing.T) {
	if _, err := Open([]byte{0, 1}, []byte("pw")); err != ErrDecryptFailure {
		t.Fatalf("expected ErrDecryptFailure, got %v", err)
	}
}

func TestSealSkipsCompressionWhenNotBeneficial(t *testing.T) {
	// Very short, high-entropy-ish plaintext: gzip overhead will exceed savings.
	plaintext := []byte{0x01}
	env, err := Seal(plaintext, []byte("pw"), SealOptions{Compress: true})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if env[0]&0x01 != 0 {
		t.Fatal("expected compressed flag to be unset when compression doesn't shrink data")
	}
	got, err := Open(env, []byte("pw"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %v want %v", got, plaintext)
	}
}
