package core

import (
	"github.com/madnessengine/bgui/internal/utils"
)

// MarkerKind distinguishes the two container marker bytes. Both use an
// identical body layout, so it is modeled as a tagged value on Container
// rather than as a type hierarchy.
type MarkerKind int

const (
	MarkerStandard MarkerKind = iota // 0x03
	MarkerText                       // 0x04
)

func (k MarkerKind) String() string {
	if k == MarkerText {
		return "Text"
	}
	return "Standard"
}

var (
	standardMarker = []byte{0x03, 0x00, 0x00, 0x00}
	textMarker     = []byte{0x04, 0x00, 0x00, 0x00}

	resourceTag   = []byte{0xBD, 0x00, 0x00, 0x00}
	resourceFlags = []byte{0x00, 0x01, 0x00, 0x00, 0x00}
	colorAnchor   = []byte{0x00, 0x00, 0x80, 0x3F} // IEEE-754 1.0f, little-endian
)

const (
	maxNameLen      = 64
	reservedSize    = 44
	resourcePropOff = 64 // offset from body where the resource property is probed
)

// Color is the (r, g, b) triple recovered by the backward anchor search.
type Color struct {
	R, G, B uint8
	Range   ByteRange
}

// ResourceProperty is the variable-length `0xBD`-tagged texture/font path.
type ResourceProperty struct {
	InnerLength uint8
	Value       string
	Range       ByteRange
	Truncated   bool
}

// Container is a single decoded BGUI UI element.
type Container struct {
	Kind MarkerKind
	Name string
	ID   uint32

	X, Y, Size float32

	Reserved [reservedSize]byte

	Resource *ResourceProperty // nil if the BD tag is absent
	Color    *Color            // nil if no anchor found

	// IsManifest is true for the id-0 container, which carries a string
	// table instead of the standard geometry/resource/color fields.
	IsManifest      bool
	ManifestStrings []string

	MarkerOffset int
	BodyOffset   int // offset of the id field
	BlockEnd     int // start of the next container, or the register

	NameRange     ByteRange
	ReservedRange ByteRange
}

// HeaderRange returns the [marker, body) span covering the marker, the
// name-length byte, the name, and the hash/pad field.
func (c *Container) HeaderRange() ByteRange {
	return ByteRange{Start: c.MarkerOffset, End: c.BodyOffset}
}

// candidate is an accepted-but-not-yet-decoded marker occurrence.
type candidate struct {
	offset     int
	kind       MarkerKind
	name       string
	nameRange  ByteRange
	bodyOffset int
	id         uint32
}

// ScanContainers implements C3: it walks [0, registerStart) for 0x03/0x04
// markers, validates each candidate, and decodes the accepted ones.
// knownIDs is the set of ids present in the register (from C2, which runs
// first); an id-0 (manifest) candidate is only accepted when 0 is itself
// in knownIDs, matching the phantom-container disambiguation rule: a
// manifest-shaped candidate found inside the header region is accepted
// iff the register declares id 0, and skipped otherwise.
//
// Because C2 always runs before C3 in this implementation (see the
// ordering guarantee in the format spec), the register is already fully
// known when scanning begins; the two-phase relaxed/strict validation
// described for implementations that scan before the register is parsed
// collapses into the single pass below.
func ScanContainers(buf []byte, registerStart int, knownIDs map[uint32]bool) (containers []Container, headerEnd int, warnings []Warning, err error) {
	var candidates []candidate

	for off := 0; off+9 <= registerStart; off++ {
		var kind MarkerKind
		switch {
		case matchAt(buf, off, standardMarker):
			kind = MarkerStandard
		case matchAt(buf, off, textMarker):
			kind = MarkerText
		default:
			continue
		}

		cand, ok := validateCandidate(buf, off, kind, registerStart, knownIDs)
		if !ok {
			continue
		}
		candidates = append(candidates, cand)
		// Resume scanning just past the id field (the loop's off++ lands
		// on bodyOffset+4): the marker, name, hash/pad and id of an
		// accepted block are not re-examined.
		off = cand.bodyOffset + 3
	}

	containers = make([]Container, 0, len(candidates))
	for i, cand := range candidates {
		blockEnd := registerStart
		if i+1 < len(candidates) {
			blockEnd = candidates[i+1].offset
		}

		c, ws := decodeContainer(buf, cand, blockEnd)
		containers = append(containers, c)
		warnings = append(warnings, ws...)
	}

	headerEnd = registerStart
	for _, c := range containers {
		if !c.IsManifest && c.ID != 0 {
			headerEnd = c.MarkerOffset
			break
		}
	}

	return containers, headerEnd, warnings, nil
}

func matchAt(buf []byte, off int, pattern []byte) bool {
	if off+len(pattern) > len(buf) {
		return false
	}
	for i, b := range pattern {
		if buf[off+i] != b {
			return false
		}
	}
	return true
}

// validateCandidate applies the candidate validation rules in order, bailing
// out on the first failure.
func validateCandidate(buf []byte, off int, kind MarkerKind, registerStart int, knownIDs map[uint32]bool) (candidate, bool) {
	// Rule 1: marker_offset + 9 <= register_start.
	if off+9 > registerStart {
		return candidate{}, false
	}

	// Rule 2: name length byte N <= 64, and the N bytes at +5 are
	// printable ASCII, or N == 0 (the manifest case).
	nameLen := int(buf[off+4])
	if nameLen > maxNameLen {
		return candidate{}, false
	}
	nameStart := off + 5
	nameEnd := nameStart + nameLen
	if nameEnd > registerStart || nameEnd > len(buf) {
		return candidate{}, false
	}
	if nameLen > 0 && !utils.IsPrintableRun(buf[nameStart:nameEnd]) {
		return candidate{}, false
	}
	name := string(buf[nameStart:nameEnd])

	// Rule 3/4: body offset = marker + 4(marker) + 1(len) + N(name) +
	// 4(hash/pad). The id there must be a known register id; id 0 (the
	// manifest) is accepted only when the register declares it too.
	bodyOffset := off + 4 + 1 + nameLen + 4
	id, ok := utils.U32(buf, bodyOffset)
	if !ok {
		return candidate{}, false
	}
	if id != 0 && !knownIDs[id] {
		return candidate{}, false
	}
	if id == 0 && !knownIDs[0] {
		return candidate{}, false
	}

	return candidate{
		offset:     off,
		kind:       kind,
		name:       name,
		nameRange:  ByteRange{Start: nameStart, End: nameEnd},
		bodyOffset: bodyOffset,
		id:         id,
	}, true
}

func decodeContainer(buf []byte, cand candidate, blockEnd int) (Container, []Warning) {
	c := Container{
		Kind:          cand.kind,
		Name:          cand.name,
		ID:            cand.id,
		MarkerOffset:  cand.offset,
		BodyOffset:    cand.bodyOffset,
		BlockEnd:      blockEnd,
		NameRange:     cand.nameRange,
		IsManifest:    cand.id == 0 && cand.name == "",
		ReservedRange: ByteRange{Start: cand.bodyOffset + 20, End: cand.bodyOffset + 20 + reservedSize},
	}

	copyReserved(buf, c.ReservedRange, &c.Reserved)

	if c.IsManifest {
		c.ManifestStrings = decodeManifest(buf, cand.bodyOffset, blockEnd)
		return c, nil
	}

	c.X, _ = utils.F32(buf, cand.bodyOffset+4)
	c.Y, _ = utils.F32(buf, cand.bodyOffset+8)
	c.Size, _ = utils.F32(buf, cand.bodyOffset+12)

	var warnings []Warning

	resource, rw := decodeResource(buf, cand.bodyOffset, blockEnd)
	c.Resource = resource
	warnings = append(warnings, rw...)

	color, cw := decodeColor(buf, cand.bodyOffset, blockEnd)
	c.Color = color
	if cw != nil {
		warnings = append(warnings, *cw)
	}

	return c, warnings
}

func copyReserved(buf []byte, r ByteRange, out *[reservedSize]byte) {
	if r.Start < 0 || r.End > len(buf) || r.Start > r.End {
		return
	}
	copy(out[:], buf[r.Start:r.End])
}

// decodeResource probes for the `BD 00 00 00` tag at body+64, followed by
// the 5-byte flags region and a u8 inner length + ASCII bytes.
func decodeResource(buf []byte, bodyOffset, blockEnd int) (*ResourceProperty, []Warning) {
	tagOffset := bodyOffset + resourcePropOff
	if !matchAt(buf, tagOffset, resourceTag) {
		return nil, nil
	}

	flagsOffset := tagOffset + 4
	if !matchAt(buf, flagsOffset, resourceFlags) {
		return nil, nil
	}

	lenOffset := flagsOffset + len(resourceFlags)
	if lenOffset >= len(buf) {
		return nil, nil
	}
	innerLen := buf[lenOffset]
	strStart := lenOffset + 1
	strEnd := strStart + int(innerLen)

	var warnings []Warning
	truncated := false
	if strEnd > blockEnd {
		strEnd = blockEnd
		truncated = true
	}
	if strEnd > len(buf) {
		strEnd = len(buf)
		truncated = true
	}
	if strEnd < strStart {
		strEnd = strStart
	}

	value := string(buf[strStart:strEnd])
	if truncated {
		warnings = append(warnings, warn(ResourceTruncated, lenOffset,
			"resource string declares length %d but only %d byte(s) remain before the block end", innerLen, strEnd-strStart))
	}

	return &ResourceProperty{
		InnerLength: innerLen,
		Value:       value,
		Range:       ByteRange{Start: lenOffset, End: strEnd},
		Truncated:   truncated,
	}, warnings
}

// decodeColor searches (body+64, blockEnd) backwards for the trailing
// 1.0f anchor and reads the three bytes immediately preceding it as RGB.
func decodeColor(buf []byte, bodyOffset, blockEnd int) (*Color, *Warning) {
	windowStart := bodyOffset + resourcePropOff
	if windowStart >= blockEnd || windowStart >= len(buf) {
		w := warn(ColorMissing, bodyOffset, "container body too short for a color anchor search")
		return nil, &w
	}
	searchEnd := blockEnd
	if searchEnd > len(buf) {
		searchEnd = len(buf)
	}

	limit := searchEnd - len(colorAnchor)
	anchor := -1
	for off := limit; off >= windowStart; off-- {
		if matchAt(buf, off, colorAnchor) {
			anchor = off
			break
		}
	}
	if anchor < 0 || anchor-3 < windowStart {
		w := warn(ColorMissing, bodyOffset, "no 1.0f color anchor found in container body")
		return nil, &w
	}

	return &Color{
		R:     buf[anchor-3],
		G:     buf[anchor-2],
		B:     buf[anchor-1],
		Range: ByteRange{Start: anchor - 3, End: anchor},
	}, nil
}

// decodeManifest reads the id-0 container's string_count u32 at body+1 and
// enumerates that many Pascal-style strings (or until the block ends).
func decodeManifest(buf []byte, bodyOffset, blockEnd int) []string {
	count, ok := utils.U32(buf, bodyOffset+1)
	if !ok {
		return nil
	}

	offset := bodyOffset + 5
	// Each string takes at least its length byte, so the block bounds the
	// capacity no matter how large the declared count is.
	capHint := 0
	if rem := blockEnd - offset; rem > 0 {
		capHint = rem
	}
	if uint64(count) < uint64(capHint) {
		capHint = int(count)
	}
	strings := make([]string, 0, capHint)
	for i := uint32(0); i < count && offset < blockEnd; i++ {
		s, next, ok := utils.ReadPascalString(buf, offset)
		if !ok || next > blockEnd {
			break
		}
		strings = append(strings, s)
		offset = next
	}
	return strings
}
