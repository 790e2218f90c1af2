package lsb

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/faanross/stegocrypt/internal/codec"
)

func randomAudio(n int, seed int64) *codec.Audio {
	r := rand.New(rand.NewSource(seed))
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(r.Intn(65536) - 32768)
	}
	return &codec.Audio{SampleRate: 44100, Channels: 1, Samples: samples}
}

func TestEmbedExtractAudioRoundTrip(t *testing.T) {
	for _, depth := range []int{1, 2, 3, 4} {
		a := randomAudio(2000, 99)
		want := []byte("secret audio payload")
		if _, err := EmbedAudio(a, want, depth); err != nil {
			t.Fatalf("depth %d: EmbedAudio: %v", depth, err)
		}
		got, err := ExtractAudio(a, len(want), depth)
		if err != nil {
			t.Fatalf("depth %d: ExtractAudio: %v", depth, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("depth %d: round trip mismatch: got %q want %q", depth, got, want)
		}
	}
}

func TestEmbedAudioCapacityExceeded(t *testing.T) {
	a := randomAudio(4, 1) // 4 samples * depth 1 = 4 bits capacity
	if _, err := EmbedAudio(a, make([]byte, 10), 1); err == nil {
		t.Fatal("expected capacity exceeded error")
	}
}

func TestEmbedAudioInvalidDepth(t *testing.T) {
	a := randomAudio(10, 1)
	if _, err := EmbedAudio(a, []byte{1}, 0); err == nil {
		t.Fatal("expected error for depth 0")
	}
	if _, err := EmbedAudio(a, []byte{1}, 5); err == nil {
		t.Fatal("expected error for depth 5")
	}
}
