package bgui

import (
	"os"

	"github.com/madnessengine/bgui/internal/core"
	"github.com/madnessengine/bgui/internal/treebuild"
)

// Parse decodes a BGUI byte buffer into a ParsedFile plus a list of
// recoverable anomalies. It never mutates buf and never retains it beyond
// what ParsedFile.Buffer exposes; the returned model borrows buf for the
// caller's lifetime. Parse never performs I/O and is a pure function of
// its input.
//
// Fatal conditions (ErrRegisterNotFound, ErrFileTooShort) abort the parse
// with no ParsedFile returned. Every other anomaly is reported as a
// Warning and parsing continues.
func Parse(buf []byte) (*ParsedFile, []Warning, error) {
	if len(buf) < core.MinFileSize {
		return nil, nil, ErrFileTooShort
	}

	// C2 runs first: it bounds the container region's end and supplies
	// the set of ids C3 validates candidates against.
	regResult, regWarnings, err := core.LocateRegister(buf)
	if err != nil {
		return nil, nil, err
	}

	knownIDs := make(map[uint32]bool, len(regResult.Entries))
	for _, e := range regResult.Entries {
		knownIDs[e.ID] = true
	}

	// C3 scans the whole pre-register region, including the header
	// (phantom containers may live there), and reports header_end back.
	containers, headerEnd, scanWarnings, err := core.ScanContainers(buf, regResult.RegisterStart, knownIDs)
	if err != nil {
		return nil, nil, err
	}

	// C1 decodes the header using the boundary C3 determined.
	header, headerWarnings := core.DecodeHeader(buf, headerEnd)

	// C4 joins register entries to containers by id and reconstructs the
	// logical tree.
	containerByID := make(map[uint32]*core.Container, len(containers))
	for i := range containers {
		containerByID[containers[i].ID] = &containers[i]
	}
	treeResult := treebuild.Build(regResult.Entries, containerByID)

	var warnings []Warning
	warnings = append(warnings, regWarnings...)
	warnings = append(warnings, scanWarnings...)
	warnings = append(warnings, headerWarnings...)
	warnings = append(warnings, treeResult.Warnings...)

	pf := &ParsedFile{
		Buffer:        buf,
		Header:        *header,
		Containers:    containers,
		Register:      regResult.Entries,
		Roots:         treeResult.Roots,
		containerByID: containerByID,
	}
	pf.indexTree()

	return pf, warnings, nil
}

// ParseFile reads path into memory and parses it. Read failures are
// wrapped with context before being returned.
func ParseFile(path string) (*ParsedFile, []Warning, error) {
	//nolint:gosec // G304: caller-provided path is the intended use of a file-format parser
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, wrapErr("reading bgui file", err)
	}
	return Parse(data)
}
