package stego

import (
	"encoding/binary"
	"fmt"

	"github.com/faanross/stegocrypt/internal/codec"
	"github.com/faanross/stegocrypt/internal/limits"
	"github.com/faanross/stegocrypt/internal/lsb"
	"github.com/faanross/stegocrypt/internal/payload"
	"github.com/faanross/stegocrypt/internal/scrypto"
	"github.com/faanross/stegocrypt/internal/spec"
)

// Payload is the tagged union Text(string) | File(bytes, name, mime).
type Payload struct {
	IsFile   bool
	Text     string
	Data     []byte
	Name     string
	MimeType string
}

// Options is the public option bag for both directions; fields unused by
// a given direction are ignored.
type Options struct {
	LSBDepth     int
	HighSecurity bool
	Compress     bool
	Platform     string
	Expert       bool
	Quick        bool
}

// Result is the decode return value: recovered bytes plus metadata.
type Result struct {
	Bytes    []byte
	Metadata payload.Metadata
}

// Encode runs the full Prepare -> Compress? -> DeriveKey -> Encrypt ->
// Frame -> LSB-embed -> re-encode pipeline. carrierKind on output always
// equals the input kind.
func Encode(carrierBytes []byte, carrierKind string, p Payload, password []byte, opts Options) (stegoBytes []byte, stegoKind string, err error) {
	if ferr := limits.CheckFormat(carrierKind); ferr != nil {
		return nil, "", newError(KindUnsupportedFormat, "%s", ferr)
	}
	if serr := limits.CheckCarrierSize(carrierKind, int64(len(carrierBytes)), opts.Platform); serr != nil {
		return nil, "", newError(KindUnsupportedFormat, "%s", serr)
	}
	if _, derr := limits.CheckDepthPolicy(limits.Options{
		LSBDepth: opts.LSBDepth, Platform: opts.Platform, Expert: opts.Expert, Quick: opts.Quick,
	}); derr != nil {
		return nil, "", newError(KindDepthPolicy, "%s", derr)
	}

	rawPayload, meta := unpackPayload(p)
	if serr := limits.CheckPayloadSize(int64(len(rawPayload)), opts.Platform); serr != nil {
		return nil, "", newError(KindUnsupportedFormat, "%s", serr)
	}

	container, err := payload.Pack(rawPayload, meta)
	if err != nil {
		return nil, "", newError(KindDecryptFailure, "payload packing failed: %v", err)
	}

	// Decode the carrier once, up front, so capacity can be checked against
	// the plaintext container before PBKDF2/AES-GCM run. This catches gross
	// overflows cheaply instead of paying for key derivation first.
	var (
		ras      *codec.Raster
		audio    *codec.Audio
		capacity int64
	)
	switch carrierKind {
	case spec.CarrierPNG, spec.CarrierBMP:
		ras, err = decodeRaster(carrierBytes, carrierKind)
		if err != nil {
			return nil, "", newError(KindCarrierCorrupt, "%s", err)
		}
		capacity = limits.ImageCapacityBytes(ras.Width, ras.Height, opts.LSBDepth)
	case spec.CarrierWAV:
		audio, err = codec.DecodeWAV(carrierBytes)
		if err != nil {
			return nil, "", newError(KindCarrierCorrupt, "%s", err)
		}
		capacity = limits.AudioCapacityBytes(len(audio.Samples), opts.LSBDepth)
	default:
		return nil, "", newError(KindUnsupportedFormat, "unsupported carrier kind %q", carrierKind)
	}
	if cerr := limits.CheckCapacity(int64(len(container)), capacity); cerr != nil {
		return nil, "", newError(KindCapacityExceeded, "%s", cerr)
	}

	envelope, err := scrypto.Seal(container, password, scrypto.SealOptions{
		Compress: opts.Compress, HighSecurity: opts.HighSecurity,
	})
	if err != nil {
		return nil, "", newError(KindDecryptFailure, "%s", scrypto.ErrDecryptFailure)
	}
	if cerr := limits.CheckCapacity(int64(len(envelope)), capacity); cerr != nil {
		return nil, "", newError(KindCapacityExceeded, "%s", cerr)
	}

	frame := frameMessage(envelope)

	switch carrierKind {
	case spec.CarrierPNG, spec.CarrierBMP:
		if _, eerr := lsb.EmbedImage(ras, frame, opts.LSBDepth); eerr != nil {
			return nil, "", newError(KindCapacityExceeded, "%s", eerr)
		}
		out, eerr := encodeRaster(ras, carrierKind)
		if eerr != nil {
			return nil, "", newError(KindCarrierCorrupt, "%s", eerr)
		}
		return out, carrierKind, nil

	case spec.CarrierWAV:
		if _, eerr := lsb.EmbedAudio(audio, frame, opts.LSBDepth); eerr != nil {
			return nil, "", newError(KindCapacityExceeded, "%s", eerr)
		}
		out, eerr := codec.EncodeWAV(audio)
		if eerr != nil {
			return nil, "", newError(KindCarrierCorrupt, "%s", eerr)
		}
		return out, carrierKind, nil
	}

	return nil, "", newError(KindUnsupportedFormat, "unsupported carrier kind %q", carrierKind)
}

// Decode runs the full Unframe -> ValidateLengths -> DeriveKey -> Decrypt
// -> Decompress? pipeline.
func Decode(stegoBytes []byte, stegoKind string, password []byte, opts Options) (Result, error) {
	if ferr := limits.CheckFormat(stegoKind); ferr != nil {
		return Result{}, newError(KindUnsupportedFormat, "%s", ferr)
	}
	if _, derr := limits.CheckDepthPolicy(limits.Options{
		LSBDepth: opts.LSBDepth, Platform: opts.Platform, Expert: opts.Expert, Quick: opts.Quick,
	}); derr != nil {
		return Result{}, newError(KindDepthPolicy, "%s", derr)
	}

	var extracted []byte
	var err error
	switch stegoKind {
	case spec.CarrierPNG, spec.CarrierBMP:
		ras, derr := decodeRaster(stegoBytes, stegoKind)
		if derr != nil {
			return Result{}, newError(KindCarrierCorrupt, "%s", derr)
		}
		extracted, err = unframeFromImage(ras, opts.LSBDepth)
	case spec.CarrierWAV:
		audio, derr := codec.DecodeWAV(stegoBytes)
		if derr != nil {
			return Result{}, newError(KindCarrierCorrupt, "%s", derr)
		}
		extracted, err = unframeFromAudio(audio, opts.LSBDepth)
	default:
		return Result{}, newError(KindUnsupportedFormat, "unsupported carrier kind %q", stegoKind)
	}
	if err != nil {
		return Result{}, newError(KindNoHiddenData, "%s", err)
	}

	container, oerr := scrypto.Open(extracted, password)
	if oerr != nil {
		return Result{}, newError(KindDecryptFailure, "%s", scrypto.ErrDecryptFailure)
	}

	data, meta, uerr := payload.Unpack(container)
	if uerr != nil {
		return Result{}, newError(KindDecryptFailure, "%s", scrypto.ErrDecryptFailure)
	}

	return Result{Bytes: data, Metadata: meta}, nil
}

// AnalyzeCapacity returns the number of encrypted-envelope bytes
// carrierBytes can hold at lsbDepth: the carrier's LSB capacity minus the
// message-frame header. The envelope's crypto overhead and the payload
// container's metadata are not subtracted.
func AnalyzeCapacity(carrierBytes []byte, carrierKind string, lsbDepth int) (totalBytes int64, err error) {
	if ferr := limits.CheckFormat(carrierKind); ferr != nil {
		return 0, newError(KindUnsupportedFormat, "%s", ferr)
	}
	switch carrierKind {
	case spec.CarrierPNG, spec.CarrierBMP:
		ras, derr := decodeRaster(carrierBytes, carrierKind)
		if derr != nil {
			return 0, newError(KindCarrierCorrupt, "%s", derr)
		}
		return limits.ImageCapacityBytes(ras.Width, ras.Height, lsbDepth), nil
	case spec.CarrierWAV:
		audio, derr := codec.DecodeWAV(carrierBytes)
		if derr != nil {
			return 0, newError(KindCarrierCorrupt, "%s", derr)
		}
		return limits.AudioCapacityBytes(len(audio.Samples), lsbDepth), nil
	}
	return 0, newError(KindUnsupportedFormat, "unsupported carrier kind %q", carrierKind)
}

func unpackPayload(p Payload) ([]byte, payload.Metadata) {
	if p.IsFile {
		return p.Data, payload.Metadata{Type: "file", Name: p.Name, MimeType: p.MimeType}
	}
	return []byte(p.Text), payload.Metadata{Type: "text"}
}

func decodeRaster(data []byte, kind string) (*codec.Raster, error) {
	if kind == spec.CarrierPNG {
		return codec.DecodePNG(data)
	}
	return codec.DecodeBMP(data)
}

func encodeRaster(ras *codec.Raster, kind string) ([]byte, error) {
	if kind == spec.CarrierPNG {
		return codec.EncodePNG(ras)
	}
	return codec.EncodeBMP(ras)
}

// frameMessage wraps envelope in the message-frame layout: "STEG" magic +
// big-endian length + envelope bytes.
func frameMessage(envelope []byte) []byte {
	frame := make([]byte, spec.FrameHeaderSize+len(envelope))
	copy(frame[0:4], spec.FrameMagic)
	binary.BigEndian.PutUint32(frame[4:8], uint32(len(envelope)))
	copy(frame[8:], envelope)
	return frame
}

var errNoHiddenData = fmt.Errorf("no hidden data found at this depth")

func unframeFromImage(ras *codec.Raster, depth int) ([]byte, error) {
	header, err := lsb.ExtractImage(ras, spec.FrameHeaderSize, depth)
	if err != nil {
		return nil, errNoHiddenData
	}
	if string(header[0:4]) != spec.FrameMagic {
		return nil, errNoHiddenData
	}
	length := binary.BigEndian.Uint32(header[4:8])
	totalBits := lsb.ImageCapacityBits(ras, depth)
	maxLen := (totalBits - spec.FrameHeaderSize*spec.BitsPerByte) / spec.BitsPerByte
	if length == 0 || int(length) > maxLen {
		return nil, errNoHiddenData
	}
	full, err := lsb.ExtractImage(ras, spec.FrameHeaderSize+int(length), depth)
	if err != nil {
		return nil, errNoHiddenData
	}
	return full[spec.FrameHeaderSize:], nil
}

func unframeFromAudio(a *codec.Audio, depth int) ([]byte, error) {
	header, err := lsb.ExtractAudio(a, spec.FrameHeaderSize, depth)
	if err != nil {
		return nil, errNoHiddenData
	}
	if string(header[0:4]) != spec.FrameMagic {
		return nil, errNoHiddenData
	}
	length := binary.BigEndian.Uint32(header[4:8])
	totalBits := lsb.AudioCapacityBits(a, depth)
	maxLen := (totalBits - spec.FrameHeaderSize*spec.BitsPerByte) / spec.BitsPerByte
	if length == 0 || int(length) > maxLen {
		return nil, errNoHiddenData
	}
	full, err := lsb.ExtractAudio(a, spec.FrameHeaderSize+int(length), depth)
	if err != nil {
		return nil, errNoHiddenData
	}
	return full[spec.FrameHeaderSize:], nil
}
