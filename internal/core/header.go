package core

import (
	"github.com/madnessengine/bgui/internal/utils"
)

// MagicKind classifies the 4-byte magic at offset 0.
type MagicKind int

const (
	MagicStandard MagicKind = iota
	MagicAlternate
	MagicUnknownVariant
)

func (v MagicKind) String() string {
	switch v {
	case MagicStandard:
		return "Standard"
	case MagicAlternate:
		return "Alternate"
	default:
		return "Unknown"
	}
}

var (
	magicStandard  = []byte{0x00, 0x00, 0x10, 0x40}
	magicAlternate = []byte{0x7B, 0x14, 0x0E, 0x40}

	spriteMarker  = []byte{0x01, 0x00, 0x00, 0x00}
	rootMarker    = []byte{0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
	rootMarkerStr = "Container"

	spriteSuffix = ".bspr"
)

// ManifestString is a Pascal-style string decoded from the header's
// page/manifest region.
type ManifestString struct {
	Value string
	Range ByteRange
}

// HeaderFacts is the decoded output of C1.
type HeaderFacts struct {
	Magic            [4]byte
	Variant          MagicKind
	SpritePath       string
	SpriteRange      *ByteRange
	ProjectRootRange *ByteRange
	ManifestStrings  []ManifestString
	HeaderEnd        int
}

// DecodeHeader implements C1. headerEnd is supplied by C3 (the offset of
// the first non-manifest container, or the register start if none was
// found) and bounds the manifest-string scan.
func DecodeHeader(buf []byte, headerEnd int) (*HeaderFacts, []Warning) {
	var warnings []Warning

	h := &HeaderFacts{HeaderEnd: headerEnd}

	switch {
	case matchAt(buf, 0, magicStandard):
		h.Variant = MagicStandard
		copy(h.Magic[:], buf[0:4])
	case matchAt(buf, 0, magicAlternate):
		h.Variant = MagicAlternate
		copy(h.Magic[:], buf[0:4])
		warnings = append(warnings, warn(MagicVariant, 0, "alternate magic 7B 14 0E 40 detected; body layout is not decoded"))
	default:
		h.Variant = MagicUnknownVariant
		if len(buf) >= 4 {
			copy(h.Magic[:], buf[0:4])
		}
		warnings = append(warnings, warn(MagicVariant, 0, "unrecognized magic bytes"))
	}

	if sp, r, ok := decodeSprite(buf); ok {
		h.SpritePath = sp
		h.SpriteRange = &r
	} else {
		warnings = append(warnings, warn(SpriteAbsent, 4, "no sprite path marker found"))
	}

	if r, ok := decodeProjectRoot(buf, headerEnd); ok {
		h.ProjectRootRange = &r
	}

	h.ManifestStrings = decodeManifestStrings(buf, headerEnd)

	return h, warnings
}

// decodeSprite looks for `01 00 00 00 <u32 len> <ascii>` at offset 4 and
// requires the string end in ".bspr".
func decodeSprite(buf []byte) (string, ByteRange, bool) {
	if !matchAt(buf, 4, spriteMarker) {
		return "", ByteRange{}, false
	}
	lenOffset := 4 + len(spriteMarker)
	length, ok := utils.U32(buf, lenOffset)
	if !ok {
		return "", ByteRange{}, false
	}
	start := lenOffset + 4
	end := start + int(length)
	if end > len(buf) || end < start {
		return "", ByteRange{}, false
	}
	s := string(buf[start:end])
	if len(s) < len(spriteSuffix) || s[len(s)-len(spriteSuffix):] != spriteSuffix {
		return "", ByteRange{}, false
	}
	return s, ByteRange{Start: start, End: end}, true
}

// decodeProjectRoot looks for the `01 00 00 00 01 00 00 00` marker
// followed by a length-prefixed "Container" string within [4, headerEnd).
func decodeProjectRoot(buf []byte, headerEnd int) (ByteRange, bool) {
	if headerEnd > len(buf) {
		headerEnd = len(buf)
	}
	searchEnd := headerEnd - len(rootMarker)
	for off := 4; off <= searchEnd; off++ {
		if !matchAt(buf, off, rootMarker) {
			continue
		}
		nameOffset := off + len(rootMarker)
		if matchRootName(buf, nameOffset, headerEnd) {
			return ByteRange{Start: off, End: nameOffset}, true
		}
	}
	return ByteRange{}, false
}

// matchRootName accepts either a u8 or a u32 length prefix in front of
// the literal "Container" string, per the open question in the format
// spec about the marker's length-prefix width.
func matchRootName(buf []byte, offset, limit int) bool {
	name := []byte(rootMarkerStr)

	if offset+1+len(name) <= limit && offset+1+len(name) <= len(buf) {
		if int(buf[offset]) == len(name) && matchAt(buf, offset+1, name) {
			return true
		}
	}
	if offset+4+len(name) <= limit && offset+4+len(name) <= len(buf) {
		if n, ok := utils.U32(buf, offset); ok && int(n) == len(name) && matchAt(buf, offset+4, name) {
			return true
		}
	}
	return false
}

// decodeManifestStrings scans [4, headerEnd) for Pascal-style strings
// (single-byte length + that many printable ASCII bytes), skipping
// non-printable runs. This is intentionally permissive: it is a page/
// manifest name finder, not a structural parser.
func decodeManifestStrings(buf []byte, headerEnd int) []ManifestString {
	if headerEnd > len(buf) {
		headerEnd = len(buf)
	}

	var out []ManifestString
	off := 4
	for off < headerEnd {
		s, next, ok := utils.ReadPascalString(buf, off)
		if ok && len(s) > 0 && next <= headerEnd {
			out = append(out, ManifestString{Value: s, Range: ByteRange{Start: off, End: next}})
			off = next
			continue
		}
		off++
	}
	return out
}
