// Package layout chooses split orientations for freshly created
// containers so window aspect ratios stay close to uniform. Decisions
// are pure functions of one tree snapshot; nothing is carried between
// loop iterations.
package layout

import "i3split/pkg/i3"

// Snapshot is one immutable view of the container tree. The node and
// parent indexes are rebuilt from scratch for every snapshot; the
// manager owns the tree, this process only borrows a copy of it.
type Snapshot struct {
	root    *i3.Node
	nodes   map[int64]*i3.Node
	parents map[int64]int64
}

// NewSnapshot indexes the tree rooted at root. Floating containers are
// not indexed; they never take part in split decisions.
func NewSnapshot(root *i3.Node) *Snapshot {
	s := &Snapshot{
		root:    root,
		nodes:   make(map[int64]*i3.Node),
		parents: make(map[int64]int64),
	}
	s.index(root, nil)
	return s
}

func (s *Snapshot) index(node *i3.Node, parent *i3.Node) {
	s.nodes[node.ID] = node
	if parent != nil {
		s.parents[node.ID] = parent.ID
	}
	for i := range node.Nodes {
		s.index(&node.Nodes[i], node)
	}
}

// Root returns the tree root.
func (s *Snapshot) Root() *i3.Node {
	return s.root
}

// Node returns the container with the given id, or nil.
func (s *Snapshot) Node(id int64) *i3.Node {
	return s.nodes[id]
}

// Parent returns the direct parent of the given container. The root
// and unknown ids have none.
func (s *Snapshot) Parent(id int64) *i3.Node {
	parentID, ok := s.parents[id]
	if !ok {
		return nil
	}
	return s.nodes[parentID]
}

// Workspace returns the workspace holding the given container, or nil
// when the container sits outside any workspace (e.g. a dock area).
func (s *Snapshot) Workspace(id int64) *i3.Node {
	for node := s.Node(id); node != nil; node = s.Parent(node.ID) {
		if node.Type == i3.NodeWorkspace {
			return node
		}
	}
	return nil
}

// Focused returns the focused container, or nil. The manager marks
// exactly one node focused at a time.
func (s *Snapshot) Focused() *i3.Node {
	return findFocused(s.root)
}

// FocusedWithin returns the focused container inside the subtree
// rooted at the given node, or nil when the node is unknown or nothing
// below it holds focus.
func (s *Snapshot) FocusedWithin(id int64) *i3.Node {
	node := s.Node(id)
	if node == nil {
		return nil
	}
	return findFocused(node)
}

func findFocused(node *i3.Node) *i3.Node {
	if node.Focused {
		return node
	}
	for i := range node.Nodes {
		if found := findFocused(&node.Nodes[i]); found != nil {
			return found
		}
	}
	for i := range node.FloatingNodes {
		if found := findFocused(&node.FloatingNodes[i]); found != nil {
			return found
		}
	}
	return nil
}
