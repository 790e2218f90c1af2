package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// DecodePNG walks the chunk list of an 8-bit truecolor(+alpha) PNG,
// reconstructs every scanline filter, and returns the decoded RGBA raster.
// Interlacing and bit depths other than 8 are rejected. Chunk CRCs are not
// verified on read; a corrupt IDAT still surfaces as a zlib/inflate error.
func DecodePNG(data []byte) (*Raster, error) {
	if len(data) < len(pngSignature)+8 || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return nil, fmt.Errorf("carrier corrupt: not a PNG signature")
	}

	var (
		width, height int
		bitDepth      byte
		colorType     byte
		interlace     byte
		idat          bytes.Buffer
		sawIHDR       bool
	)

	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := binary.BigEndian.Uint32(data[pos : pos+4])
		typ := string(data[pos+4 : pos+8])
		dataStart := pos + 8
		dataEnd := dataStart + int(length)
		if dataEnd+4 > len(data) {
			return nil, fmt.Errorf("carrier corrupt: truncated PNG chunk %q", typ)
		}
		chunkData := data[dataStart:dataEnd]

		switch typ {
		case "IHDR":
			if len(chunkData) < 13 {
				return nil, fmt.Errorf("carrier corrupt: short IHDR")
			}
			width = int(binary.BigEndian.Uint32(chunkData[0:4]))
			height = int(binary.BigEndian.Uint32(chunkData[4:8]))
			bitDepth = chunkData[8]
			colorType = chunkData[9]
			interlace = chunkData[12]
			sawIHDR = true
		case "IDAT":
			idat.Write(chunkData)
		case "IEND":
			pos = dataEnd + 4
			goto doneChunks
		}
		pos = dataEnd + 4
	}
doneChunks:

	if !sawIHDR {
		return nil, fmt.Errorf("carrier corrupt: missing IHDR")
	}
	if bitDepth != 8 {
		return nil, fmt.Errorf("carrier corrupt: unsupported PNG bit depth %d", bitDepth)
	}
	if colorType != 2 && colorType != 6 {
		return nil, fmt.Errorf("carrier corrupt: unsupported PNG color type %d", colorType)
	}
	if interlace != 0 {
		return nil, fmt.Errorf("carrier corrupt: interlaced PNG not supported")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("carrier corrupt: invalid PNG dimensions %dx%d", width, height)
	}

	channels := 3
	if colorType == 6 {
		channels = 4
	}

	zr, err := zlib.NewReader(bytes.NewReader(idat.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("carrier corrupt: bad IDAT zlib stream: %w", err)
	}
	defer zr.Close()
	inflated, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("carrier corrupt: bad IDAT inflate: %w", err)
	}

	stride := width * channels
	want := height * (stride + 1)
	if len(inflated) < want {
		return nil, fmt.Errorf("carrier corrupt: inflated PNG data too short")
	}

	out := NewRaster(width, height)
	var prev []byte
	offset := 0
	for y := 0; y < height; y++ {
		filterType := inflated[offset]
		offset++
		cur := make([]byte, stride)
		copy(cur, inflated[offset:offset+stride])
		offset += stride

		if err := unfilterScanline(filterType, cur, prev, channels); err != nil {
			return nil, err
		}

		for x := 0; x < width; x++ {
			si := x * channels
			di := out.At(x, y)
			out.Pix[di+0] = cur[si+0]
			out.Pix[di+1] = cur[si+1]
			out.Pix[di+2] = cur[si+2]
			if channels == 4 {
				out.Pix[di+3] = cur[si+3]
			} else {
				out.Pix[di+3] = 255
			}
		}
		prev = cur
	}

	return out, nil
}

// EncodePNG emits a single-IDAT, color-type-6 (RGBA), filter-method-0 PNG
// from the given raster. No adaptive filtering on write: every scanline is
// prefixed with filter byte 0 (None), trading compression ratio for a
// simpler, fully lossless round trip.
func EncodePNG(r *Raster) ([]byte, error) {
	if err := r.checkBounds(); err != nil {
		return nil, err
	}

	stride := r.Width * 4
	raw := make([]byte, r.Height*(stride+1))
	for y := 0; y < r.Height; y++ {
		rowStart := y * (stride + 1)
		raw[rowStart] = filterNone
		copy(raw[rowStart+1:rowStart+1+stride], r.Pix[y*stride:(y+1)*stride])
	}

	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Write(pngSignature)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(r.Width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(r.Height))
	ihdr[8] = 8   // bit depth
	ihdr[9] = 6   // color type: RGBA
	ihdr[10] = 0  // compression method
	ihdr[11] = 0  // filter method
	ihdr[12] = 0  // interlace method
	writeChunk(&out, "IHDR", ihdr)
	writeChunk(&out, "IDAT", zbuf.Bytes())
	writeChunk(&out, "IEND", nil)

	return out.Bytes(), nil
}

func writeChunk(w *bytes.Buffer, typ string, data []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	w.Write(lenBuf[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)

	w.WriteString(typ)
	w.Write(data)

	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc.Sum32())
	w.Write(crcBuf[:])
}
