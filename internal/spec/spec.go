// Package spec holds the wire-format and policy constants shared across the
// codec, LSB, payload, and crypto layers so every package agrees on the same
// framing without importing each other.
package spec

// Message frame constants.
const (
	// FrameMagic is the 4-byte marker that opens every embedded message.
	FrameMagic = "STEG"
	// FrameHeaderSize is len(FrameMagic) + 4 bytes of big-endian length.
	FrameHeaderSize = 8
)

// Crypto envelope constants.
const (
	SaltSize    = 16 // fixed on the wire, verified equal to 16 on decode
	NonceSize   = 12 // AES-GCM nonce
	KeySize     = 32 // AES-256
	TagSize     = 16 // GCM authentication tag
	IterDefault = 100000
	IterHighSec = 310000
)

// Envelope flag bits.
const (
	FlagCompressed = 1 << 0
	FlagHighSec    = 1 << 1
)

// Payload container constants.
const (
	PayloadVersion    = 1
	MaxMetadataBytes  = 10240
	MaxFilenameUnits  = 255 // UTF-16 code units
	MaxMimeTypeChars  = 100
	LegacyDefaultName = "recovered_data.bin"
)

// LSB engine constants.
const (
	BitsPerByte  = 8
	ChannelsRGB  = 3 // R, G, B per pixel; alpha is never a capacity channel
	MinLSBDepth  = 1
	MaxLSBDepth  = 4
	DepthWarnMin = 3 // depth > 2 MUST produce a detectability warning
)

// Platform identifiers.
const (
	PlatformDesktop = "desktop"
	PlatformMobile  = "mobile"
)

// Carrier kinds.
const (
	CarrierPNG = "png"
	CarrierBMP = "bmp"
	CarrierWAV = "wav"
)

// Platform ceilings, in bytes.
var (
	MaxImageBytesDesktop = int64(100 * 1024 * 1024)
	MaxAudioBytesDesktop = int64(200 * 1024 * 1024)
	MaxPayloadDesktop    = int64(50 * 1024 * 1024)

	MaxImageBytesMobile = int64(20 * 1024 * 1024)
	MaxAudioBytesMobile = int64(20 * 1024 * 1024)
	MaxPayloadMobile    = int64(10 * 1024 * 1024)
)

// Density warning thresholds.
const (
	DensityWarnNear = 0.50
	DensityWarnHigh = 0.80
)
