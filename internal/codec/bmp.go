package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const bmpMaxDimension = 32768

// DecodeBMP reads a 24- or 32-bit uncompressed (BI_RGB) BMP by walking the
// fixed-offset BITMAPFILEHEADER/BITMAPINFOHEADER layout directly, the same
// style of manual offset reads a RIFF chunk walker uses for its own header.
func DecodeBMP(data []byte) (*Raster, error) {
	if len(data) < 54 || data[0] != 'B' || data[1] != 'M' {
		return nil, fmt.Errorf("carrier corrupt: not a BMP signature")
	}

	dataOffset := binary.LittleEndian.Uint32(data[10:14])
	width := int(int32(binary.LittleEndian.Uint32(data[18:22])))
	heightField := int32(binary.LittleEndian.Uint32(data[22:26]))
	bpp := binary.LittleEndian.Uint16(data[28:30])

	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("carrier corrupt: unsupported BMP bit depth %d", bpp)
	}
	if width <= 0 || width > bmpMaxDimension {
		return nil, fmt.Errorf("carrier corrupt: invalid BMP width %d", width)
	}
	height := int(heightField)
	topDown := height < 0
	if topDown {
		height = -height
	}
	if height <= 0 || height > bmpMaxDimension {
		return nil, fmt.Errorf("carrier corrupt: invalid BMP height %d", height)
	}
	if int(dataOffset) >= len(data) {
		return nil, fmt.Errorf("carrier corrupt: BMP data offset beyond file length")
	}

	bytesPerPixel := int(bpp / 8)
	rowStride := 4 * ((width*int(bpp) + 31) / 32)
	need := int(dataOffset) + rowStride*height
	if need > len(data) {
		return nil, fmt.Errorf("carrier corrupt: BMP pixel data truncated")
	}

	out := NewRaster(width, height)
	for y := 0; y < height; y++ {
		srcRow := y
		if !topDown {
			srcRow = height - 1 - y
		}
		rowStart := int(dataOffset) + srcRow*rowStride
		for x := 0; x < width; x++ {
			px := rowStart + x*bytesPerPixel
			b := data[px+0]
			g := data[px+1]
			r := data[px+2]
			a := byte(255)
			if bytesPerPixel == 4 {
				a = data[px+3]
			}
			di := out.At(x, y)
			out.Pix[di+0] = r
			out.Pix[di+1] = g
			out.Pix[di+2] = b
			out.Pix[di+3] = a
		}
	}

	return out, nil
}

// EncodeBMP always emits 32-bit BGRA, top-down, unpadded rows, regardless
// of the bit depth or row order of the BMP it was decoded from.
func EncodeBMP(r *Raster) ([]byte, error) {
	if err := r.checkBounds(); err != nil {
		return nil, err
	}

	rowStride := 4 * r.Width
	pixelDataSize := rowStride * r.Height
	fileSize := 54 + pixelDataSize

	var buf bytes.Buffer
	buf.Grow(fileSize)

	// BITMAPFILEHEADER
	buf.WriteString("BM")
	writeU32(&buf, uint32(fileSize))
	writeU32(&buf, 0) // reserved
	writeU32(&buf, 54)

	// BITMAPINFOHEADER
	writeU32(&buf, 40)
	writeI32(&buf, int32(r.Width))
	writeI32(&buf, int32(-r.Height)) // negative: top-down
	writeU16(&buf, 1)                // planes
	writeU16(&buf, 32)               // bpp
	writeU32(&buf, 0)                // BI_RGB
	writeU32(&buf, uint32(pixelDataSize))
	writeI32(&buf, 2835) // x ppm
	writeI32(&buf, 2835) // y ppm
	writeU32(&buf, 0)    // colors used
	writeU32(&buf, 0)    // important colors

	pixels := make([]byte, pixelDataSize)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			si := r.At(x, y)
			di := y*rowStride + x*4
			pixels[di+0] = r.Pix[si+2] // B
			pixels[di+1] = r.Pix[si+1] // G
			pixels[di+2] = r.Pix[si+0] // R
			pixels[di+3] = r.Pix[si+3] // A
		}
	}
	buf.Write(pixels)

	return buf.Bytes(), nil
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeI32(buf *bytes.Buffer, v int32) {
	writeU32(buf, uint32(v))
}
