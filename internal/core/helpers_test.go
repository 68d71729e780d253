package core

import (
	"encoding/binary"
	"math"
)

// containerSpec describes a container to synthesize for a test fixture.
// Fields are zero-valued/absent unless set.
type containerSpec struct {
	kind             byte // 0x03 or 0x04
	name             string
	id               uint32
	x, y, size       float32
	resourceValue    string // empty: no resource block
	resourceLenField uint8  // inner length byte; defaults to len(resourceValue) if zero and value is non-empty
	color            *[3]byte
	extraPadding     int // extra zero bytes appended after the fixed 44-byte reserved block, before any resource/color material
}

// buildContainer assembles a single container block's bytes (marker
// through the end of whatever resource/color material is requested). It
// does not include any following container or the register.
func buildContainer(s containerSpec) []byte {
	var buf []byte

	kind := s.kind
	if kind == 0 {
		kind = 0x03
	}
	buf = append(buf, kind, 0, 0, 0)
	buf = append(buf, byte(len(s.name)))
	buf = append(buf, []byte(s.name)...)
	buf = append(buf, 0, 0, 0, 0) // hash/pad

	idBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(idBuf, s.id)
	buf = append(buf, idBuf...)

	buf = append(buf, f32le(s.x)...)
	buf = append(buf, f32le(s.y)...)
	buf = append(buf, f32le(s.size)...)

	buf = append(buf, make([]byte, 4)...)  // gap before reserved
	buf = append(buf, make([]byte, 44)...) // reserved block
	buf = append(buf, make([]byte, s.extraPadding)...)

	if s.resourceValue != "" {
		buf = append(buf, 0xBD, 0, 0, 0)
		buf = append(buf, 0, 1, 0, 0, 0)
		innerLen := s.resourceLenField
		if innerLen == 0 {
			innerLen = uint8(len(s.resourceValue))
		}
		buf = append(buf, innerLen)
		buf = append(buf, []byte(s.resourceValue)...)
	}

	if s.color != nil {
		buf = append(buf, s.color[0], s.color[1], s.color[2])
		buf = append(buf, 0, 0, 0x80, 0x3F)
	}

	return buf
}

// buildManifest assembles the id-0 manifest container: zero-length name,
// a 4-byte id field that reads as 0, then a trailing byte that forms the
// high-order byte of the body+1 string_count u32 (its low 3 bytes overlap
// the id field's trailing zero bytes), then that many Pascal strings. The
// high byte is chosen large enough that string_count always exceeds the
// number of strings supplied, so decodeManifest's loop runs out on block
// end rather than on the count.
func buildManifest(strs []string) []byte {
	var buf []byte
	buf = append(buf, 0x03, 0, 0, 0)
	buf = append(buf, 0) // zero-length name
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, 0, 0, 0, 0) // id 0 (also the low 3 bytes of string_count)
	buf = append(buf, 0x7F)       // string_count high byte

	for _, s := range strs {
		buf = append(buf, byte(len(s)))
		buf = append(buf, []byte(s)...)
	}

	return buf
}

// buildRegister assembles the 14-byte signature plus the given entries.
func buildRegister(entries []RegisterEntry) []byte {
	buf := append([]byte{}, registerSignature...)
	for _, e := range entries {
		idBuf := make([]byte, 4)
		cntBuf := make([]byte, 4)
		binary.LittleEndian.PutUint32(idBuf, e.ID)
		binary.LittleEndian.PutUint32(cntBuf, e.ChildCount)
		buf = append(buf, idBuf...)
		buf = append(buf, cntBuf...)
	}
	return buf
}

func f32le(v float32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	return buf
}
