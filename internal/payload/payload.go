// Package payload implements the plaintext container that carries a
// recovered file's type, name, MIME type and timestamp alongside its raw
// bytes, and that is encrypted as a whole by internal/scrypto.
package payload

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/faanross/stegocrypt/internal/spec"
)

// Metadata describes the file-like identity of a payload: what kind of
// content it is, when it was packed, and (optionally) its original name and
// MIME type.
type Metadata struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Name      string `json:"name,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
}

var filenameForbidden = map[rune]bool{
	'<': true, '>': true, ':': true, '"': true,
	'/': true, '\\': true, '|': true, '?': true, '*': true,
}

// sanitizeName truncates name to at most spec.MaxFilenameUnits UTF-16 code
// units (splitting a surrogate pair at the truncation boundary is
// accepted), then drops characters forbidden in a filename and C0 control
// characters.
func sanitizeName(name string) string {
	units := utf16.Encode([]rune(name))
	if len(units) > spec.MaxFilenameUnits {
		units = units[:spec.MaxFilenameUnits]
	}
	truncated := string(utf16.Decode(units))

	var b strings.Builder
	for _, r := range truncated {
		if r <= 0x1F || filenameForbidden[r] {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sanitizeMimeType(mime string) string {
	r := []rune(mime)
	if len(r) > spec.MaxMimeTypeChars {
		r = r[:spec.MaxMimeTypeChars]
	}
	return string(r)
}

// nowFunc is overridable in tests; production callers get time.Now.
var nowFunc = func() int64 { return time.Now().Unix() }

// sanitizeMetadata enforces the coercion rules: type collapses to one of
// the two known literals, a zero timestamp is replaced with the current
// time, name and mimeType are truncated/filtered.
func sanitizeMetadata(m Metadata) Metadata {
	if m.Type != "text" && m.Type != "file" {
		m.Type = "file"
	}
	if m.Timestamp == 0 {
		m.Timestamp = nowFunc()
	}
	m.Name = sanitizeName(m.Name)
	m.MimeType = sanitizeMimeType(m.MimeType)
	return m
}

// Pack sanitizes meta, JSON-encodes it, and emits
// [version=1][len u32-LE][json bytes][payload bytes].
func Pack(data []byte, meta Metadata) ([]byte, error) {
	meta = sanitizeMetadata(meta)

	jsonBytes, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("metadata encode failed: %w", err)
	}
	if len(jsonBytes) > spec.MaxMetadataBytes {
		return nil, fmt.Errorf("metadata too large: %d bytes exceeds %d", len(jsonBytes), spec.MaxMetadataBytes)
	}

	out := make([]byte, 0, 5+len(jsonBytes)+len(data))
	out = append(out, spec.PayloadVersion)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(jsonBytes)))
	out = append(out, lenBuf[:]...)
	out = append(out, jsonBytes...)
	out = append(out, data...)
	return out, nil
}

// errMalformed is returned for every structural or schema failure Unpack
// can encounter. Callers fold this into the single opaque decrypt-failure
// message surfaced to end users; it is kept distinct here only so tests
// can assert on the unpacking stage in isolation.
var errMalformed = fmt.Errorf("payload container malformed")

// Unpack reverses Pack. A version byte other than 1 is treated as a legacy
// raw payload: the entire buffer is the data, with default metadata
// {type:"file", name:"recovered_data.bin"}.
func Unpack(buf []byte) ([]byte, Metadata, error) {
	if len(buf) < 5 {
		if len(buf) == 0 || buf[0] != spec.PayloadVersion {
			return buf, legacyMetadata(), nil
		}
		return nil, Metadata{}, errMalformed
	}

	if buf[0] != spec.PayloadVersion {
		return buf, legacyMetadata(), nil
	}

	m := binary.LittleEndian.Uint32(buf[1:5])
	if m == 0 || int(m) > spec.MaxMetadataBytes {
		return nil, Metadata{}, errMalformed
	}
	if 5+int(m) > len(buf) {
		return nil, Metadata{}, errMalformed
	}

	jsonBytes := buf[5 : 5+int(m)]
	var meta Metadata
	if err := json.Unmarshal(jsonBytes, &meta); err != nil {
		return nil, Metadata{}, errMalformed
	}
	if meta.Type != "text" && meta.Type != "file" {
		return nil, Metadata{}, errMalformed
	}

	meta.Name = sanitizeName(meta.Name)
	meta.MimeType = sanitizeMimeType(meta.MimeType)

	data := buf[5+int(m):]
	return data, meta, nil
}

func legacyMetadata() Metadata {
	return Metadata{
		Type:      "file",
		Timestamp: nowFunc(),
		Name:      spec.LegacyDefaultName,
	}
}
