// Package imperative stores per-unit munition instructions keyed by
// chassis, model, pilot and bin type, with wildcard fallback.
package imperative

import (
	"log/slog"
	"maps"
	"strings"
)

// Wildcard is the key segment matched when no exact child exists.
const Wildcard = "any"

// node is one trie level. children and the imperative maps are keyed by
// lowercased strings; counts memoizes decoded imperatives per bin type.
type node struct {
	children    map[string]int
	imperatives map[string]string
	counts      map[string]map[string]int
}

func newNode() node {
	return node{
		children:    make(map[string]int),
		imperatives: make(map[string]string),
		counts:      make(map[string]map[string]int),
	}
}

// Tree is an arena-backed trie. Node 0 is the root; children are indices
// into nodes, so a Tree can be cloned without walking pointers.
type Tree struct {
	nodes []node
}

// New returns an empty tree holding only the root.
func New() *Tree {
	return &Tree{nodes: []node{newNode()}}
}

// Insert descends (creating as needed) along keys and merges payload into the
// terminal node. Bin-type keys are lowercased; the last write per bin type wins.
func (t *Tree) Insert(keys []string, payload map[string]string) {
	idx := 0
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		child, ok := t.nodes[idx].children[k]
		if !ok {
			t.nodes = append(t.nodes, newNode())
			child = len(t.nodes) - 1
			t.nodes[idx].children[k] = child
		}
		idx = child
	}
	n := &t.nodes[idx]
	for binType, imp := range payload {
		key := strings.ToLower(strings.TrimSpace(binType))
		n.imperatives[key] = imp
		delete(n.counts, key)
	}
}

// Retrieve walks keys, preferring the exact child at each level and falling
// back to the "any" child. A dead end below an exact match backtracks to the
// wildcard at that level, so adding a specific path never hides the general
// one. It returns nil when no path matches.
func (t *Tree) Retrieve(keys ...string) *Node {
	norm := make([]string, len(keys))
	for i, k := range keys {
		norm[i] = strings.ToLower(strings.TrimSpace(k))
	}
	idx, ok := t.find(0, norm)
	if !ok {
		return nil
	}
	return &Node{tree: t, idx: idx}
}

func (t *Tree) find(idx int, keys []string) (int, bool) {
	if len(keys) == 0 {
		return idx, true
	}
	children := t.nodes[idx].children
	if child, ok := children[keys[0]]; ok {
		if found, ok := t.find(child, keys[1:]); ok {
			return found, true
		}
	}
	if keys[0] == Wildcard {
		return 0, false
	}
	if child, ok := children[Wildcard]; ok {
		return t.find(child, keys[1:])
	}
	return 0, false
}

// Clone returns an independent deep copy.
func (t *Tree) Clone() *Tree {
	c := &Tree{nodes: make([]node, len(t.nodes))}
	for i, n := range t.nodes {
		cn := node{
			children:    maps.Clone(n.children),
			imperatives: maps.Clone(n.imperatives),
			counts:      make(map[string]map[string]int, len(n.counts)),
		}
		for k, v := range n.counts {
			cn.counts[k] = maps.Clone(v)
		}
		c.nodes[i] = cn
	}
	return c
}

// Len is the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Node is a handle to one resolved trie level.
type Node struct {
	tree *Tree
	idx  int
}

func (n *Node) data() *node { return &n.tree.nodes[n.idx] }

// Imperatives returns a copy of the raw bin type → imperative map.
func (n *Node) Imperatives() map[string]string {
	return maps.Clone(n.data().imperatives)
}

// CountsFor returns how many bins of each munition the imperative for binType
// requests. The decode happens once per bin type and is memoized. An
// unmatched bin type yields an empty map.
func (n *Node) CountsFor(binType string) map[string]int {
	d := n.data()
	for _, c := range candidates(binType) {
		if counts, ok := d.counts[c]; ok {
			return counts
		}
		if imp, ok := d.imperatives[c]; ok {
			counts := decode(imp)
			d.counts[c] = counts
			return counts
		}
	}
	return map[string]int{}
}

// PriorityListFor returns the ordered tokens of the imperative for binType,
// duplicates preserved. An unmatched bin type yields nil.
func (n *Node) PriorityListFor(binType string) []string {
	d := n.data()
	for _, c := range candidates(binType) {
		if imp, ok := d.imperatives[c]; ok {
			return Split(imp)
		}
	}
	return nil
}

func decode(imp string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range strings.Split(imp, ":") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			slog.Debug("skipping empty imperative token", "imperative", imp)
			continue
		}
		counts[tok]++
	}
	return counts
}
