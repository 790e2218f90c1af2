// Command stegocrypt-decode recovers a hidden text message or file from a
// stego carrier.
package main

import (
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
	inPath := flag.String("in", "", "Path to the stego carrier")
	outPath := flag.String("out", "", "Path to write the recovered payload")
	passwordFlag := flag.String("password", "", "Password (env STEGOCRYPT_PASSWORD, or prompt if empty)")
	depth := flag.Int("depth", 1, "LSB depth 1-4 used during encode")
	expert := flag.Bool("expert", false, "Allow LSB depth > 1 on desktop")
	platform := flag.String("platform", spec.PlatformDesktop, "desktop or mobile")
	flag.Parse()

	if *inPath == "" {
		exit(2, "❌ -in is required")
	}

	carrierKind, err := carrierKindFromPath(*inPath)
	if err != nil {
		exit(2, "❌ %v", err)
	}

	stegoBytes, err := os.ReadFile(*inPath)
	if err != nil {
		exit(5, "❌ reading carrier: %v", err)
	}

	var password []byte
	if *passwordFlag != "" {
		password = []byte(*passwordFlag)
	} else if env := os.Getenv("STEGOCRYPT_PASSWORD"); env != "" {
		password = []byte(env)
	} else {
		password, err = scrypto.GetSecurePassword("🔑 Enter password: ")
		if err != nil {
			exit(2, "❌ %v", err)
		}
	}

	fmt.Println("\n🔓 stegocrypt decode")
	fmt.Printf("   Carrier: %s (%s, %d bytes)\n", *inPath, carrierKind, len(stegoBytes))

	opts := stego.Options{LSBDepth: *depth, Platform: *platform, Expert: *expert}
	result, err := stego.Decode(stegoBytes, carrierKind, password, opts)
	if err != nil {
		if serr, ok := err.(*stego.Error); ok {
			switch serr.Kind {
			case stego.KindDecryptFailure:
				exit(4, "❌ %s", serr.Message)
			case stego.KindNoHiddenData:
				exit(2, "❌ %s", serr.Message)
			case stego.KindUnsupportedFormat, stego.KindDepthPolicy:
				exit(2, "❌ %s", serr.Message)
			}
		}
		exit(2, "❌ decode failed: %v", err)
	}

	fmt.Printf("✅ Recovered %d bytes, type=%s", len(result.Bytes), result.Metadata.Type)
	if result.Metadata.Name != "" {
		fmt.Printf(", name=%s", result.Metadata.Name)
	}
	fmt.Println()

	if *outPath != "" {
		if err := os.WriteFile(*outPath, result.Bytes, 0644); err != nil {
			exit(5, "❌ writing output: %v", err)
		}
		fmt.Printf("💾 Saved to %s\n", *outPath)
	} else if result.Metadata.Type == "text" {
		fmt.Println(string(result.Bytes))
	}
}
