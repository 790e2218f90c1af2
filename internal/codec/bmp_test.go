package codec

import "testing"

func TestBMPRoundTrip32Bit(t *testing.T) {
	want := NewRaster(12, 9)
	for y := 0; y < want.Height; y++ {
		for x := 0; x < want.Width; x++ {
			i := want.At(x, y)
			want.Pix[i+0] = byte(x * 20)
			want.Pix[i+1] = byte(y * 25)
			want.Pix[i+2] = byte((x ^ y) * 5)
			want.Pix[i+3] = 255
		}
	}

	enc, err := EncodeBMP(want)
	if err != nil {
		t.Fatalf("EncodeBMP: %v", err)
	}
	got, err := DecodeBMP(enc)
	if err != nil {
		t.Fatalf("DecodeBMP: %v", err)
	}
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel byte %d mismatch: got %d want %d", i, got.Pix[i], want.Pix[i])
		}
	}
}

func TestBMPRejectsBadSignature(t *testing.T) {
	if _, err := DecodeBMP([]byte("nope")); err == nil {
		t.Fatal("expected error for bad BMP signature")
	}
}

func TestBMPBottomUpOrientation(t *testing.T) {
	// Hand-build a tiny 24-bit bottom-up BMP: 2x2, row stride 4-byte aligned (6 -> 8 bytes).
	width, height := 2, 2
	rowStride := 4 * ((width*24 + 31) / 32)
	pixelSize := rowStride * height
	data := make([]byte, 54+pixelSize)
	data[0], data[1] = 'B', 'M'
	putU32 := func(off int, v uint32) {
		data[off] = byte(v)
		data[off+1] = byte(v >> 8)
		data[off+2] = byte(v >> 16)
		data[off+3] = byte(v >> 24)
	}
	putU32(2, uint32(len(data)))
	putU32(10, 54)
	putU32(14, 40)
	putU32(18, uint32(width))
	putU32(22, uint32(height)) // positive: bottom-up
	data[28] = 24
	data[29] = 0

	// Bottom row (stored first) = red (255,0,0) BGR -> 0,0,255
	data[54+0], data[54+1], data[54+2] = 0, 0, 255
	// Top row (stored second)
	topOff := 54 + rowStride
	data[topOff+0], data[topOff+1], data[topOff+2] = 0, 255, 0 // green

	ras, err := DecodeBMP(data)
	if err != nil {
		t.Fatalf("DecodeBMP: %v", err)
	}
	// Output row 0 (top of image) should be green, since source is bottom-up.
	i := ras.At(0, 0)
	if ras.Pix[i+0] != 0 || ras.Pix[i+1] != 255 || ras.Pix[i+2] != 0 {
		t.Fatalf("top row mismatch: got %v", ras.Pix[i:i+4])
	}
	i = ras.At(0, 1)
	if ras.Pix[i+0] != 255 || ras.Pix[i+1] != 0 || ras.Pix[i+2] != 0 {
		t.Fatalf("bottom row mismatch: got %v", ras.Pix[i:i+4])
	}
}
