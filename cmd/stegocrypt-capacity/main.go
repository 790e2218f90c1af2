// Command stegocrypt-capacity reports how many encrypted-envelope bytes a
// carrier can hold at a given LSB depth, as a standalone tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

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
	depth := flag.Int("depth", 1, "LSB depth 1-4")
	flag.Parse()

	if *inPath == "" {
		exit(2, "❌ -in is required")
	}

	carrierKind, err := carrierKindFromPath(*inPath)
	if err != nil {
		exit(2, "❌ %v", err)
	}

	carrierBytes, err := os.ReadFile(*inPath)
	if err != nil {
		exit(5, "❌ reading carrier: %v", err)
	}

	total, err := stego.AnalyzeCapacity(carrierBytes, carrierKind, *depth)
	if err != nil {
		if serr, ok := err.(*stego.Error); ok {
			exit(2, "❌ %s", serr.Message)
		}
		exit(2, "❌ %v", err)
	}

	fmt.Printf("📊 %s at depth %d: %d envelope bytes\n", *inPath, *depth, total)
}
