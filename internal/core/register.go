package core

import (
	"github.com/madnessengine/bgui/internal/utils"
)

// registerSignature is the 14-byte marker that precedes the end-of-file
// register: a single 0x0E byte followed by thirteen zero bytes.
var registerSignature = []byte{0x0E, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

// RegisterEntry is a single (id, child_count) pair decoded from the
// register. Ids are not required to be sequential; they identify
// containers.
type RegisterEntry struct {
	ID         uint32
	ChildCount uint32
	Offset     int
}

// RegisterResult is the output of LocateRegister: the ordered entries and
// the offset of the signature's first byte, which bounds the container
// region scanned by C3.
type RegisterResult struct {
	Entries       []RegisterEntry
	RegisterStart int
}

// LocateRegister implements C2: it scans backward from the end of buf for
// the last (highest-offset) occurrence of the register signature, then
// decodes the (id, child_count) pairs that follow it. Returns
// ErrRegisterNotFound if the signature is absent.
func LocateRegister(buf []byte) (*RegisterResult, []Warning, error) {
	if len(buf) < len(registerSignature) {
		return nil, nil, ErrRegisterNotFound
	}

	start := utils.FindLastBackward(buf, registerSignature, len(buf)-len(registerSignature))
	if start < 0 {
		return nil, nil, ErrRegisterNotFound
	}

	signatureEnd := start + len(registerSignature)
	remaining := len(buf) - signatureEnd
	capacity := remaining / 8
	leftover := remaining % 8

	var warnings []Warning
	if leftover != 0 {
		trailingOffset := signatureEnd + capacity*8
		warnings = append(warnings, warn(TrailingBytes, trailingOffset,
			"%d trailing byte(s) after the last register entry do not form a full 8-byte entry", leftover))
	}

	entries := make([]RegisterEntry, 0, capacity)
	for i := 0; i < capacity; i++ {
		off := signatureEnd + i*8
		id, _ := utils.U32(buf, off)
		count, _ := utils.U32(buf, off+4)
		entries = append(entries, RegisterEntry{ID: id, ChildCount: count, Offset: off})
	}

	return &RegisterResult{Entries: entries, RegisterStart: start}, warnings, nil
}
