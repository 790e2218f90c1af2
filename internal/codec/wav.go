package codec

import (
	"encoding/binary"
	"fmt"
)

// Audio holds interleaved 16-bit signed PCM samples plus the declared
// sample rate and channel count.
type Audio struct {
	SampleRate uint32
	Channels   uint16
	Samples    []int16
}

// DecodeWAV walks the RIFF sub-chunk list of a canonical WAVE/PCM file
// directly out of an in-memory byte buffer, tolerating extra chunks
// (LIST, fact, ...) before or after "data" by skipping anything it
// doesn't recognize.
func DecodeWAV(data []byte) (*Audio, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("carrier corrupt: not a RIFF/WAVE file")
	}

	var (
		sawFmt        bool
		sawData       bool
		audioFormat   uint16
		channels      uint16
		sampleRate    uint32
		bitsPerSample uint16
		pcmBytes      []byte
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		body := pos + 8
		end := body + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("carrier corrupt: truncated WAV chunk %q", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("carrier corrupt: short fmt chunk")
			}
			audioFormat = binary.LittleEndian.Uint16(data[body : body+2])
			channels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			sampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			bitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			sawFmt = true
		case "data":
			pcmBytes = data[body:end]
			sawData = true
		}

		pos = end
		if size%2 == 1 {
			pos++ // pad byte
		}
	}

	if !sawFmt {
		return nil, fmt.Errorf("carrier corrupt: missing fmt chunk")
	}
	if !sawData {
		return nil, fmt.Errorf("carrier corrupt: missing data chunk")
	}
	if audioFormat != 1 {
		return nil, fmt.Errorf("carrier corrupt: unsupported WAV audio format %d (only PCM)", audioFormat)
	}
	if bitsPerSample != 16 {
		return nil, fmt.Errorf("carrier corrupt: unsupported WAV bit depth %d (only 16-bit)", bitsPerSample)
	}
	if channels == 0 {
		return nil, fmt.Errorf("carrier corrupt: zero channel count")
	}

	samples := make([]int16, len(pcmBytes)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcmBytes[i*2 : i*2+2]))
	}

	return &Audio{SampleRate: sampleRate, Channels: channels, Samples: samples}, nil
}

// EncodeWAV emits a canonical 44-byte RIFF/WAVE/PCM header followed by the
// samples in little-endian, with no extra chunks.
func EncodeWAV(a *Audio) ([]byte, error) {
	if a.Channels == 0 {
		return nil, fmt.Errorf("invalid audio: zero channel count")
	}

	dataSize := len(a.Samples) * 2
	bitsPerSample := uint16(16)
	blockAlign := a.Channels * (bitsPerSample / 8)
	byteRate := a.SampleRate * uint32(blockAlign)

	buf := make([]byte, 44+dataSize)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], a.Channels)
	binary.LittleEndian.PutUint32(buf[24:28], a.SampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], byteRate)
	binary.LittleEndian.PutUint16(buf[32:34], blockAlign)
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i, s := range a.Samples {
		binary.LittleEndian.PutUint16(buf[44+i*2:46+i*2], uint16(s))
	}

	return buf, nil
}
