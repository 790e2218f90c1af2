package codec

import (
	"math"
	"testing"
)

func sineWave(n int, sampleRate float64) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(10000 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}
	return out
}

func TestWAVRoundTrip(t *testing.T) {
	want := &Audio{
		SampleRate: 44100,
		Channels:   1,
		Samples:    sineWave(44100, 44100),
	}
	enc, err := EncodeWAV(want)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	got, err := DecodeWAV(enc)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if got.SampleRate != want.SampleRate || got.Channels != want.Channels {
		t.Fatalf("header mismatch: got %+v", got)
	}
	if len(got.Samples) != len(want.Samples) {
		t.Fatalf("sample count mismatch: got %d want %d", len(got.Samples), len(want.Samples))
	}
	for i := range want.Samples {
		if got.Samples[i] != want.Samples[i] {
			t.Fatalf("sample %d mismatch: got %d want %d", i, got.Samples[i], want.Samples[i])
		}
	}
}

func TestWAVStereoPreserved(t *testing.T) {
	want := &Audio{SampleRate: 8000, Channels: 2, Samples: []int16{1, -1, 2, -2, 3, -3}}
	enc, _ := EncodeWAV(want)
	got, err := DecodeWAV(enc)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if got.Channels != 2 {
		t.Fatalf("channel count not preserved: got %d", got.Channels)
	}
}

func TestWAVRejectsNonPCM(t *testing.T) {
	enc, _ := EncodeWAV(&Audio{SampleRate: 8000, Channels: 1, Samples: []int16{1, 2}})
	// Flip audio format field (offset 20-21) to something other than 1.
	enc[20] = 3
	enc[21] = 0
	if _, err := DecodeWAV(enc); err == nil {
		t.Fatal("expected error for non-PCM audio format")
	}
}

func TestWAVRejectsBadRIFF(t *testing.T) {
	if _, err := DecodeWAV([]byte("junkjunkjunk")); err == nil {
		t.Fatal("expected error for bad RIFF header")
	}
}
