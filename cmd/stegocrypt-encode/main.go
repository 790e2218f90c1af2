// Command stegocrypt-encode hides an encrypted text message or file inside
// a PNG, BMP, or WAV carrier.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faanross/stegocrypt/internal/scrypto"
	"github.com/faanross/stegocrypt/internal/spec"
	"github.com/faanross/stegocrypt/internal/stego"
)

func carrierKindFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return spec.CarrierPNG, nil
	case ".bmp":
		return spec.CarrierBMP, nil
	case ".wav":
		return spec.CarrierWAV, nil
	default:
		return "", fmt.Errorf("cannot infer carrier kind from extension %q", filepath.Ext(path))
	}
}

func exit(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

func main() {
	inPath := flag.String("in", "", "Path to carrier file (.png, .bmp, .wav)")
	outPath := flag.String("out", "", "Path to write the stego carrier")
	textMsg := flag.String("text", "", "Text message to hide")
	filePath := flag.String("file", "", "Path to a file to hide")
	passwordFlag := flag.String("password", "", "Password (env STEGOCRYPT_PASSWORD, or prompt if empty)")
	depth := flag.Int("depth", 1, "LSB depth 1-4")
	highSecurity := flag.Bool("high-security", false, "Use the 310000-iteration KDF work factor")
	noCompress := flag.Bool("no-compress", false, "Disable gzip compression before encryption")
	expert := flag.Bool("expert", false, "Allow LSB depth > 1 on desktop")
	platform := flag.String("platform", spec.PlatformDesktop, "desktop or mobile")
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		exit(2, "❌ -in and -out are required")
	}
	if *textMsg == "" && *filePath == "" {
		exit(2, "❌ provide -text or -file")
	}
	if *textMsg != "" && *filePath != "" {
		exit(2, "❌ provide only one of -text or -file")
	}

	carrierKind, err := carrierKindFromPath(*inPath)
	if err != nil {
		exit(2, "❌ %v", err)
	}

	carrierBytes, err := os.ReadFile(*inPath)
	if err != nil {
		exit(5, "❌ reading carrier: %v", err)
	}

	var p stego.Payload
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			exit(5, "❌ reading payload file: %v", err)
		}
		p = stego.Payload{IsFile: true, Data: data, Name: filepath.Base(*filePath)}
	} else {
		p = stego.Payload{Text: *textMsg}
	}

	password, err := resolvePassword(*passwordFlag)
	if err != nil {
		exit(2, "❌ %v", err)
	}

	fmt.Println("\n🔐 stegocrypt encode")
	fmt.Printf("   Carrier: %s (%s, %d bytes)\n", *inPath, carrierKind, len(carrierBytes))

	opts := stego.Options{
		LSBDepth:     *depth,
		HighSecurity: *highSecurity,
		Compress:     !*noCompress,
		Platform:     *platform,
		Expert:       *expert,
	}

	stegoBytes, _, err := stego.Encode(carrierBytes, carrierKind, p, password, opts)
	if err != nil {
		if serr, ok := err.(*stego.Error); ok {
			switch serr.Kind {
			case stego.KindCapacityExceeded:
				exit(3, "❌ %s", serr.Message)
			case stego.KindUnsupportedFormat, stego.KindDepthPolicy:
				exit(2, "❌ %s", serr.Message)
			case stego.KindDecryptFailure:
				exit(4, "❌ %s", serr.Message)
			}
		}
		exit(2, "❌ encode failed: %v", err)
	}

	if err := os.WriteFile(*outPath, stegoBytes, 0644); err != nil {
		exit(5, "❌ writing output: %v", err)
	}

	fmt.Printf("✅ Wrote %s (%d bytes)\n", *outPath, len(stegoBytes))
}



func resolvePassword(flagValue string) ([]byte, error) {
	if flagValue != "" {
		return []byte(flagValue), nil
	}
	if env := os.Getenv("STEGOCRYPT_PASSWORD"); env != "" {
		return []byte(env), nil
	}
	pass, err := scrypto.GetSecurePassword("🔑 Enter password: ")
	if err != nil {
		return nil, err
	}
	confirm, err := scrypto.GetSecurePassword("🔑 Confirm password: ")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(pass, confirm) {
		return nil, fmt.Errorf("passwords do not match")
	}
	return pass, nil
}
