// Package lsb implements least-significant-bit embedding and extraction for
// both raster image carriers and 16-bit PCM audio carriers. Byte-to-bit
// packing lives in internal/bitio; this package supplies the per-channel /
// per-sample walk and a configurable bit depth (1-4 low bits per channel or
// sample, rather than a single fixed bit).
package lsb

import (
	"fmt"

	"github.com/faanross/stegocrypt/internal/bitio"
	"github.com/faanross/stegocrypt/internal/codec"
	"github.com/faanross/stegocrypt/internal/spec"
)

// ImageCapacityBits returns the number of bits that can be hidden in ras at
// the given LSB depth (W*H*3*depth), not yet reduced by the frame-header
// reservation applied at the byte-capacity layer.
func ImageCapacityBits(ras *codec.Raster, depth int) int {
	return ras.Width * ras.Height * spec.ChannelsRGB * depth
}

func validateDepth(depth int) error {
	if depth < spec.MinLSBDepth || depth > spec.MaxLSBDepth {
		return fmt.Errorf("lsb depth %d out of range [%d,%d]", depth, spec.MinLSBDepth, spec.MaxLSBDepth)
	}
	return nil
}

// EmbedImage writes data's bits into the low `depth` bits of the R, G, and B
// channels of ras, row-major, left-to-right, top-to-bottom. Alpha is never a
// capacity channel; every pixel the loop writes to has its alpha set to 255
// (opaque), and pixels past the end of the data keep their alpha. It mutates
// ras in place and also returns it for chaining.
func EmbedImage(ras *codec.Raster, data []byte, depth int) (*codec.Raster, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}
	bits := bitio.Pack(data)
	capacity := ImageCapacityBits(ras, depth)
	if len(bits) > capacity {
		return nil, fmt.Errorf("capacity exceeded: need %d bits, have %d", len(bits), capacity)
	}

	mask := byte(0xFF << uint(depth))
	pos := 0
	for y := 0; y < ras.Height && pos < len(bits); y++ {
		for x := 0; x < ras.Width && pos < len(bits); x++ {
			i := ras.At(x, y)
			for c := 0; c < spec.ChannelsRGB && pos < len(bits); c++ {
				chunk := byte(0)
				for b := 0; b < depth && pos < len(bits); b++ {
					if bits[pos] != 0 {
						chunk |= 1 << uint(depth-1-b)
					}
					pos++
				}
				ras.Pix[i+c] = (ras.Pix[i+c] & mask) | chunk
			}
			ras.Pix[i+3] = 255
		}
	}
	return ras, nil
}

// ExtractImage reads nBytes worth of data back out of ras's R, G, B
// channels at the given depth, inverse to EmbedImage.
func ExtractImage(ras *codec.Raster, nBytes int, depth int) ([]byte, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}
	needBits := nBytes * spec.BitsPerByte
	capacity := ImageCapacityBits(ras, depth)
	if needBits > capacity {
		return nil, fmt.Errorf("requested %d bytes exceeds carrier capacity", nBytes)
	}

	bits := make([]uint8, 0, needBits)
	lowMask := byte(1<<uint(depth)) - 1
	for y := 0; y < ras.Height && len(bits) < needBits; y++ {
		for x := 0; x < ras.Width && len(bits) < needBits; x++ {
			i := ras.At(x, y)
			for c := 0; c < spec.ChannelsRGB && len(bits) < needBits; c++ {
				chunk := ras.Pix[i+c] & lowMask
				for b := depth - 1; b >= 0 && len(bits) < needBits; b-- {
					bits = append(bits, (chunk>>uint(b))&1)
				}
			}
		}
	}
	return bitio.Unpack(bits), nil
}
