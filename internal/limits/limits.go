// Package limits implements the platform-aware validation ceilings, format
// whitelist, and LSB-depth policy enforced at the public API boundary
// before any encode/decode proceeds. Plain functions over a stateless
// Options bag, no struct-held state.
package limits

import (
	"fmt"

	"github.com/faanross/stegocrypt/internal/spec"
)

// Options is the public encode/decode option bag.
type Options struct {
	LSBDepth     int
	Platform     string // spec.PlatformDesktop or spec.PlatformMobile
	Expert       bool
	Quick        bool
	HighSecurity bool
	Compress     bool
}

// CheckFormat rejects any carrier kind outside the {png,bmp,wav} whitelist.
func CheckFormat(kind string) error {
	switch kind {
	case spec.CarrierPNG, spec.CarrierBMP, spec.CarrierWAV:
		return nil
	default:
		return fmt.Errorf("unsupported carrier format %q: only png, bmp, wav are lossless and supported", kind)
	}
}

// CheckCarrierSize enforces the platform ceiling for an image or audio
// carrier.
func CheckCarrierSize(kind string, size int64, platform string) error {
	mobile := platform == spec.PlatformMobile
	var limit int64
	switch kind {
	case spec.CarrierPNG, spec.CarrierBMP:
		if mobile {
			limit = spec.MaxImageBytesMobile
		} else {
			limit = spec.MaxImageBytesDesktop
		}
	case spec.CarrierWAV:
		if mobile {
			limit = spec.MaxAudioBytesMobile
		} else {
			limit = spec.MaxAudioBytesDesktop
		}
	default:
		return fmt.Errorf("unsupported carrier format %q", kind)
	}
	if size > limit {
		return fmt.Errorf("carrier size %d bytes exceeds %s limit of %d bytes", size, platform, limit)
	}
	return nil
}

// CheckPayloadSize enforces the platform ceiling on the raw payload before
// it enters the container/envelope pipeline.
func CheckPayloadSize(size int64, platform string) error {
	limit := spec.MaxPayloadDesktop
	if platform == spec.PlatformMobile {
		limit = spec.MaxPayloadMobile
	}
	if size > limit {
		return fmt.Errorf("payload size %d bytes exceeds %s limit of %d bytes", size, platform, limit)
	}
	return nil
}

// CheckDepthPolicy enforces the depth rules: depth 1 is mandatory on mobile
// and in quick mode; depths 2-4 require expert mode on desktop. It returns
// warn == true (not an error) when depth >= DepthWarnMin, since
// that case is legal but must surface a detectability warning.
func CheckDepthPolicy(opts Options) (warn bool, err error) {
	if opts.LSBDepth < spec.MinLSBDepth || opts.LSBDepth > spec.MaxLSBDepth {
		return false, fmt.Errorf("lsb depth %d outside allowed range [%d,%d]", opts.LSBDepth, spec.MinLSBDepth, spec.MaxLSBDepth)
	}
	if opts.LSBDepth > 1 {
		if opts.Platform == spec.PlatformMobile {
			return false, fmt.Errorf("lsb depth %d not permitted on mobile platform: depth 1 is mandatory", opts.LSBDepth)
		}
		if opts.Quick {
			return false, fmt.Errorf("lsb depth %d not permitted in quick mode: depth 1 is mandatory", opts.LSBDepth)
		}
		if !opts.Expert {
			return false, fmt.Errorf("lsb depth %d requires expert mode on desktop", opts.LSBDepth)
		}
	}
	return opts.LSBDepth >= spec.DepthWarnMin, nil
}

// CheckCapacity verifies envelopeSize fits within capacityBytes.
func CheckCapacity(envelopeSize, capacityBytes int64) error {
	if envelopeSize > capacityBytes {
		return fmt.Errorf("capacity exceeded: envelope is %d bytes, carrier capacity at this depth is %d bytes", envelopeSize, capacityBytes)
	}
	return nil
}

// DensityWarning classifies carrier utilization against the recommended
// warning thresholds (> 50% near capacity, > 80% high density).
func DensityWarning(envelopeSize, capacityBytes int64) string {
	if capacityBytes <= 0 {
		return ""
	}
	density := float64(envelopeSize) / float64(capacityBytes)
	switch {
	case density > spec.DensityWarnHigh:
		return "high density"
	case density > spec.DensityWarnNear:
		return "near capacity"
	default:
		return ""
	}
}

// ImageCapacityBytes implements capacity(C,d) = floor(W*H*3*d/8) - 8 for
// images; the -8 reserves room for the message frame header.
func ImageCapacityBytes(width, height, depth int) int64 {
	bits := int64(width) * int64(height) * int64(spec.ChannelsRGB) * int64(depth)
	return bits/spec.BitsPerByte - spec.FrameHeaderSize
}

// AudioCapacityBytes implements capacity(C,d) = floor(N*d/8) - 8 for audio;
// the -8 reserves room for the message frame header.
func AudioCapacityBytes(sampleCount, depth int) int64 {
	bits := int64(sampleCount) * int64(depth)
	return bits/spec.BitsPerByte - spec.FrameHeaderSize
}
