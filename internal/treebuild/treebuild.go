// Package treebuild implements C4, the logical-tree reconstructor that
// bridges the BGUI file's flat physical container layout to its
// hierarchical semantic model, using the register's (id, child_count)
// pairs as a pre-order, child-count-stack program.
package treebuild

import (
	"github.com/madnessengine/bgui/internal/core"
)

// TreeNode is a single node of the reconstructed logical tree.
type TreeNode struct {
	ID         uint32
	Container  *core.Container // nil when the register references an id no scanner found
	ChildCount uint32
	Children   []*TreeNode
	Dangling   bool

	SubtreeRange    core.ByteRange
	hasSubtreeRange bool
}

// Result is the output of Build: the forest's roots (normally a single
// root; a pathological file may produce more, each flagged with a
// SecondRoot warning) plus any anomalies encountered.
type Result struct {
	Roots    []*TreeNode
	Warnings []core.Warning
}

// Root returns the first root, or nil if the register was empty.
func (r *Result) Root() *TreeNode {
	if len(r.Roots) == 0 {
		return nil
	}
	return r.Roots[0]
}

type frame struct {
	node      *TreeNode
	remaining uint32
	offset    int
}

// Build implements C4: it consumes register entries in order, using a
// child-count stack, to hydrate the logical tree. containers indexes
// decoded containers by id so each TreeNode can carry its footprint.
func Build(entries []core.RegisterEntry, containers map[uint32]*core.Container) *Result {
	var (
		stack    []*frame
		roots    []*TreeNode
		warnings []core.Warning
		seen     = make(map[uint32]bool, len(entries))
	)

	for _, e := range entries {
		n := &TreeNode{ID: e.ID, ChildCount: e.ChildCount}

		if c, ok := containers[e.ID]; ok {
			n.Container = c
		} else {
			n.Dangling = true
			warnings = append(warnings, core.NewWarning(core.DanglingRegisterId, e.Offset,
				"register entry references id that no container scan found"))
		}

		if seen[e.ID] {
			warnings = append(warnings, core.NewWarning(core.DuplicateId, e.Offset,
				"duplicate container id across register entries"))
		}
		seen[e.ID] = true

		if len(stack) == 0 {
			roots = append(roots, n)
			if len(roots) > 1 {
				warnings = append(warnings, core.NewWarning(core.SecondRoot, e.Offset,
					"register entry starts a second root; tree is a forest, not a single tree"))
			}
		} else {
			top := stack[len(stack)-1]
			top.node.Children = append(top.node.Children, n)
			if top.remaining > 0 {
				top.remaining--
			}
		}

		if e.ChildCount > 0 {
			stack = append(stack, &frame{node: n, remaining: e.ChildCount, offset: e.Offset})
		}

		for len(stack) > 0 && stack[len(stack)-1].remaining == 0 {
			stack = stack[:len(stack)-1]
		}
	}

	for _, f := range stack {
		got := len(f.node.Children)
		want := int(f.node.ChildCount)
		warnings = append(warnings, core.NewWarning(core.RegisterShortfall, f.offset,
			"register ran out of entries before child_count was satisfied: got %d of %d", got, want))
	}

	for _, r := range roots {
		computeSubtreeRange(r)
	}

	return &Result{Roots: roots, Warnings: warnings}
}

// computeSubtreeRange performs a single post-order walk: each node's
// subtree range is the union of its own container's [marker, block_end)
// (if present) and its children's subtree ranges.
// Dangling nodes contribute only their children's ranges.
func computeSubtreeRange(n *TreeNode) core.ByteRange {
	var acc core.ByteRange
	if n.Container != nil {
		acc = core.ByteRange{Start: n.Container.MarkerOffset, End: n.Container.BlockEnd}
		n.hasSubtreeRange = true
	}
	for _, child := range n.Children {
		childRange := computeSubtreeRange(child)
		if child.hasSubtreeRange {
			acc = core.UnionRange(acc, childRange)
			n.hasSubtreeRange = true
		}
	}
	n.SubtreeRange = acc
	return acc
}
