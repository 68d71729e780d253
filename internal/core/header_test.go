package core

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildHeader(spritePath string, includeRoot bool) []byte {
	var buf []byte
	buf = append(buf, magicStandard...)

	buf = append(buf, spriteMarker...)
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(spritePath)))
	buf = append(buf, lenBuf...)
	buf = append(buf, []byte(spritePath)...)

	if includeRoot {
		buf = append(buf, rootMarker...)
		buf = append(buf, byte(len(rootMarkerStr)))
		buf = append(buf, []byte(rootMarkerStr)...)
	}

	return buf
}

func TestDecodeHeaderStandardMagic(t *testing.T) {
	buf := buildHeader("assets/ui_sprite.bspr", true)
	h, warnings := DecodeHeader(buf, len(buf))

	require.Equal(t, MagicStandard, h.Variant)
	require.Equal(t, "assets/ui_sprite.bspr", h.SpritePath)
	require.NotNil(t, h.SpriteRange)
	require.NotNil(t, h.ProjectRootRange)
	for _, w := range warnings {
		require.NotEqual(t, MagicVariant, w.Kind)
		require.NotEqual(t, SpriteAbsent, w.Kind)
	}
}

func TestDecodeHeaderAlternateMagic(t *testing.T) {
	buf := append([]byte{}, magicAlternate...)
	buf = append(buf, make([]byte, 16)...)

	h, warnings := DecodeHeader(buf, len(buf))
	require.Equal(t, MagicAlternate, h.Variant)
	require.Len(t, warnings, 2) // alternate-magic warning + sprite-absent
	require.Equal(t, MagicVariant, warnings[0].Kind)
}

func TestDecodeHeaderUnknownMagic(t *testing.T) {
	buf := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	buf = append(buf, make([]byte, 16)...)

	h, warnings := DecodeHeader(buf, len(buf))
	require.Equal(t, MagicUnknownVariant, h.Variant)
	require.Equal(t, MagicVariant, warnings[0].Kind)
}

func TestDecodeHeaderSpriteAbsentWarns(t *testing.T) {
	buf := append([]byte{}, magicStandard...)
	buf = append(buf, make([]byte, 16)...)

	h, warnings := DecodeHeader(buf, len(buf))
	require.Empty(t, h.SpritePath)
	require.Nil(t, h.SpriteRange)

	var found bool
	for _, w := range warnings {
		if w.Kind == SpriteAbsent {
			found = true
		}
	}
	require.True(t, found)
}

func TestDecodeHeaderRejectsWrongSuffix(t *testing.T) {
	buf := buildHeader("assets/ui_sprite.txt", false)
	h, warnings := DecodeHeader(buf, len(buf))
	require.Empty(t, h.SpritePath)

	var found bool
	for _, w := range warnings {
		if w.Kind == SpriteAbsent {
			found = true
		}
	}
	require.True(t, found)
}

func TestDecodeManifestStringsSkipsNonPrintable(t *testing.T) {
	buf := append([]byte{}, magicStandard...)
	buf = append(buf, make([]byte, 4)...) // no sprite marker
	buf = append(buf, 0xFF, 0xFE, 0xFD)   // junk, skipped byte by byte
	buf = append(buf, 4)
	buf = append(buf, []byte("page")...)
	buf = append(buf, 5)
	buf = append(buf, []byte("login")...)

	h, _ := DecodeHeader(buf, len(buf))
	require.Len(t, h.ManifestStrings, 2)
	require.Equal(t, "page", h.ManifestStrings[0].Value)
	require.Equal(t, "login", h.ManifestStrings[1].Value)
}

func TestDecodeHeaderProjectRootU32LengthPrefix(t *testing.T) {
	buf := append([]byte{}, magicStandard...)
	buf = append(buf, make([]byte, 4)...)
	buf = append(buf, rootMarker...)
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(rootMarkerStr)))
	buf = append(buf, lenBuf...)
	buf = append(buf, []byte(rootMarkerStr)...)

	h, _ := DecodeHeader(buf, len(buf))
	require.NotNil(t, h.ProjectRootRange)
}

func TestDecodeHeaderNoProjectRoot(t *testing.T) {
	buf := buildHeader("assets/ui_sprite.bspr", false)
	h, _ := DecodeHeader(buf, len(buf))
	require.Nil(t, h.ProjectRootRange)
}
