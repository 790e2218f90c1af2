package lsb

import (
	"fmt"

	"github.com/faanross/stegocrypt/internal/bitio"
	"github.com/faanross/stegocrypt/internal/codec"
	"github.com/faanross/stegocrypt/internal/spec"
)

// AudioCapacityBits returns the number of bits that can be hidden across all
// samples of a at the given LSB depth (N*depth), not yet reduced by the
// frame-header reservation applied at the byte-capacity layer.
func AudioCapacityBits(a *codec.Audio, depth int) int {
	return len(a.Samples) * depth
}

// EmbedAudio writes data's bits into the low `depth` bits of each 16-bit PCM
// sample of a, in sample order across all interleaved channels. It mutates
// a.Samples in place and also returns a for chaining.
func EmbedAudio(a *codec.Audio, data []byte, depth int) (*codec.Audio, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}
	bits := bitio.Pack(data)
	capacity := AudioCapacityBits(a, depth)
	if len(bits) > capacity {
		return nil, fmt.Errorf("capacity exceeded: need %d bits, have %d", len(bits), capacity)
	}

	mask := int16(int32(-1) << uint(depth))
	pos := 0
	for i := range a.Samples {
		if pos >= len(bits) {
			break
		}
		var chunk int16
		for b := 0; b < depth && pos < len(bits); b++ {
			if bits[pos] != 0 {
				chunk |= 1 << uint(depth-1-b)
			}
			pos++
		}
		a.Samples[i] = (a.Samples[i] & mask) | chunk
	}
	return a, nil
}

// ExtractAudio reads nBytes worth of data back out of a's samples at the
// given depth, inverse to EmbedAudio.
func ExtractAudio(a *codec.Audio, nBytes int, depth int) ([]byte, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}
	needBits := nBytes * spec.BitsPerByte
	capacity := AudioCapacityBits(a, depth)
	if needBits > capacity {
		return nil, fmt.Errorf("requested %d bytes exceeds carrier capacity", nBytes)
	}

	bits := make([]uint8, 0, needBits)
	lowMask := int16(1<<uint(depth)) - 1
	for i := range a.Samples {
		if len(bits) >= needBits {
			break
		}
		chunk := a.Samples[i] & lowMask
		for b := depth - 1; b >= 0 && len(bits) < needBits; b-- {
			bits = append(bits, uint8((chunk>>uint(b))&1))
		}
	}
	return bitio.Unpack(bits), nil
}
