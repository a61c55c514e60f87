// Package pathtree implements the deduplication trie that guarantees a
// byte on disk is attributed to exactly one rule.
//
// The tree follows a strict two-phase protocol: a single writer builds it
// with Insert, then it is treated as immutable and may be queried from any
// number of goroutines. The phases must not overlap.
package pathtree

import "strings"

// Tree is a trie keyed by path segments. Every node carries an optional
// aggregated size. A node is a leaf when it has a size and no children; a
// leaf owns its entire subtree, so no two stored paths can be in an
// ancestor/descendant relationship.
type Tree struct {
	children map[string]*Tree
	size     *uint64
}

// New creates an empty tree
func New() *Tree {
	return &Tree{children: make(map[string]*Tree)}
}

// Insert adds path to the tree, invoking sizeFn to compute its size once
// the terminal node is reached. A previously inserted descendant is
// subsumed: its subtree is discarded and the new leaf owns the size. If an
// ancestor of path is already a leaf, the insert is a no-op and ok is
// false. The returned delta is the change in aggregated size, already
// propagated to every node on the walked path.
func (t *Tree) Insert(path string, sizeFn func() uint64) (delta int64, ok bool) {
	return t.insert(split(path), sizeFn)
}

func (t *Tree) insert(segments []string, sizeFn func() uint64) (int64, bool) {
	if len(segments) == 0 {
		// this node becomes a leaf and owns its subtree
		size := sizeFn()
		var prev uint64
		if t.size != nil {
			prev = *t.size
		}
		t.size = &size
		t.children = make(map[string]*Tree)
		return int64(size) - int64(prev), true
	}

	// never add children to leaves
	if t.isLeaf() {
		return 0, false
	}

	child, exists := t.children[segments[0]]
	if !exists {
		child = New()
		t.children[segments[0]] = child
	}

	delta, ok := child.insert(segments[1:], sizeFn)
	if ok {
		t.addSize(delta)
	}
	return delta, ok
}

func (t *Tree) addSize(delta int64) {
	var cur uint64
	if t.size != nil {
		cur = *t.size
	}
	next := uint64(int64(cur) + delta)
	t.size = &next
}

func (t *Tree) isLeaf() bool {
	return t.size != nil && len(t.children) == 0
}

// Size returns the aggregated size of the whole tree
func (t *Tree) Size() uint64 {
	if t.size == nil {
		return 0
	}
	return *t.size
}

// SizeAt returns the aggregated size stored at exactly path. It reports
// false when the path was never inserted or was subsumed by an ancestor
// leaf.
func (t *Tree) SizeAt(path string) (uint64, bool) {
	node := t.traverse(split(path))
	if node == nil || node.size == nil {
		return 0, false
	}
	return *node.size, true
}

func (t *Tree) traverse(segments []string) *Tree {
	node := t
	for _, seg := range segments {
		child, exists := node.children[seg]
		if !exists {
			return nil
		}
		node = child
	}
	return node
}

// ContainsAncestor reports whether path is already fully covered by a
// leaf at or above it. Segments of path beyond the leaf (including glob
// metacharacters) are irrelevant, the walk stops at the first leaf.
func (t *Tree) ContainsAncestor(path string) bool {
	node := t
	for _, seg := range split(path) {
		child, exists := node.children[seg]
		if !exists {
			return node.isLeaf()
		}
		node = child
	}
	return node.isLeaf()
}

// ContainsDescendant reports whether the tree stores path itself or any
// path below it.
func (t *Tree) ContainsDescendant(path string) bool {
	return t.traverse(split(path)) != nil
}

// Walk visits every node that has a size set, passing the full path and
// whether the node is a leaf. Traversal order is unspecified.
func (t *Tree) Walk(fn func(path string, size uint64, leaf bool)) {
	t.walk("", fn)
}

func (t *Tree) walk(prefix string, fn func(path string, size uint64, leaf bool)) {
	if t.size != nil {
		path := prefix
		if path == "" {
			path = "/"
		}
		fn(path, *t.size, t.isLeaf())
	}
	for seg, child := range t.children {
		child.walk(prefix+"/"+seg, fn)
	}
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
