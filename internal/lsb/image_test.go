package lsb

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/faanross/stegocrypt/internal/codec"
)

func randomRaster(w, h int, seed int64) *codec.Raster {
	r := rand.New(rand.NewSource(seed))
	ras := codec.NewRaster(w, h)
	r.Read(ras.Pix)
	// keep alpha opaque, matching real carriers
	for i := 3; i < len(ras.Pix); i += 4 {
		ras.Pix[i] = 255
	}
	return ras
}

func TestEmbedExtractImageRoundTrip(t *testing.T) {
	for _, depth := range []int{1, 2, 3, 4} {
		ras := randomRaster(20, 20, 42)
		want := []byte("the quick brown fox jumps over the lazy dog")
		if _, err := EmbedImage(ras, want, depth); err != nil {
			t.Fatalf("depth %d: EmbedImage: %v", depth, err)
		}
		got, err := ExtractImage(ras, len(want), depth)
		if err != nil {
			t.Fatalf("depth %d: ExtractImage: %v", depth, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("depth %d: round trip mismatch: got %q want %q", depth, got, want)
		}
	}
}

func TestEmbedImageCapacityExceeded(t *testing.T) {
	ras := codec.NewRaster(2, 2) // 4 pixels * 3 channels * depth 1 = 12 bits = 1 byte capacity (minus nothing here)
	data := make([]byte, 10)
	if _, err := EmbedImage(ras, data, 1); err == nil {
		t.Fatal("expected capacity exceeded error")
	}
}

func TestEmbedImageRejectsAlphaChannel(t *testing.T) {
	ras := randomRaster(4, 4, 7)
	before := make([]byte, len(ras.Pix))
	copy(before, ras.Pix)
	if _, err := EmbedImage(ras, []byte{0xFF}, 1); err != nil {
		t.Fatalf("EmbedImage: %v", err)
	}
	for y := 0; y < ras.Height; y++ {
		for x := 0; x < ras.Width; x++ {
			i := ras.At(x, y)
			if ras.Pix[i+3] != 255 {
				t.Fatalf("alpha channel was touched at (%d,%d): got %d", x, y, ras.Pix[i+3])
			}
		}
	}
}

func TestEmbedImageInvalidDepth(t *testing.T) {
	ras := randomRaster(4, 4, 1)
	if _, err := EmbedImage(ras, []byte{1}, 0); err == nil {
		t.Fatal("expected error for depth 0")
	}
	if _, err := EmbedImage(ras, []byte{1}, 5); err == nil {
		t.Fatal("expected error for depth 5")
	}
}
