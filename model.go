// Package bgui is a heuristic reverse-engineering decoder for the
// Madness Engine's .bgui binary UI description format. It recovers the
// flat container layout and the hierarchical logical tree from files
// that may deviate from the idealized layout, preserves unknown byte
// regions for round-trip fidelity, and exposes a byte-range index so a
// viewer can highlight any node's exact footprint.
//
// Parsing is a pure function of the input buffer (Parse never performs
// I/O); ParseFile is a thin convenience wrapper that reads a file first.
package bgui

import (
	"github.com/madnessengine/bgui/internal/core"
	"github.com/madnessengine/bgui/internal/treebuild"
)

// Re-exported data model types. These are defined in
// internal/core and internal/treebuild, the packages that actually
// produce them, and aliased here so this package remains the only import
// a viewer or writer collaborator needs.
type (
	ByteRange        = core.ByteRange
	MarkerKind       = core.MarkerKind
	Color            = core.Color
	ResourceProperty = core.ResourceProperty
	Container        = core.Container
	RegisterEntry    = core.RegisterEntry
	ManifestString   = core.ManifestString
	HeaderFacts      = core.HeaderFacts
	MagicKind        = core.MagicKind
	WarningKind      = core.WarningKind
	Warning          = core.Warning
	TreeNode         = treebuild.TreeNode
)

const (
	MarkerStandard = core.MarkerStandard
	MarkerText     = core.MarkerText

	MagicStandard       = core.MagicStandard
	MagicAlternate      = core.MagicAlternate
	MagicUnknownVariant = core.MagicUnknownVariant
)

const (
	WarningMagicVariant       = core.MagicVariant
	WarningSpriteAbsent       = core.SpriteAbsent
	WarningResourceTruncated  = core.ResourceTruncated
	WarningColorMissing       = core.ColorMissing
	WarningDanglingRegisterId = core.DanglingRegisterId
	WarningRegisterShortfall  = core.RegisterShortfall
	WarningDuplicateId        = core.DuplicateId
	WarningSecondRoot         = core.SecondRoot
	WarningTrailingBytes      = core.TrailingBytes
)

// ParsedFile is the complete output of a single Parse call: the input
// buffer, the decoded header facts, the flat container list, the
// register entries, the reconstructed logical forest, and a byte-range
// index built over all of it.
type ParsedFile struct {
	Buffer []byte

	Header     HeaderFacts
	Containers []Container
	Register   []RegisterEntry
	Roots      []*TreeNode

	byID          map[uint32]*TreeNode
	containerByID map[uint32]*Container
}

// Root returns the primary root of the reconstructed tree (the first
// register entry), or nil if the register was empty.
func (p *ParsedFile) Root() *TreeNode {
	if len(p.Roots) == 0 {
		return nil
	}
	return p.Roots[0]
}

// Lookup returns the TreeNode for the given container id, if the register
// declared one.
func (p *ParsedFile) Lookup(id uint32) (*TreeNode, bool) {
	n, ok := p.byID[id]
	return n, ok
}

// Container returns the decoded Container for the given id, if the
// scanner found one (independent of whether the register references it).
func (p *ParsedFile) Container(id uint32) (*Container, bool) {
	c, ok := p.containerByID[id]
	return c, ok
}

func (p *ParsedFile) indexTree() {
	p.byID = make(map[uint32]*TreeNode)
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		if n == nil {
			return
		}
		if _, exists := p.byID[n.ID]; !exists {
			p.byID[n.ID] = n
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range p.Roots {
		walk(r)
	}
}
