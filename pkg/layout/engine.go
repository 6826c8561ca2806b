package layout

import (
	"fmt"

	"i3split/pkg/i3"
)

// Action is what a decision asks the dispatcher to do.
type Action int

const (
	// Noop issues no command at all.
	Noop Action = iota
	// SetVertical puts a vertical split line through the container:
	// children sit side by side ("layout splith" on the wire).
	SetVertical
	// SetHorizontal puts a horizontal split line through the
	// container: children stack top to bottom ("layout splitv" on
	// the wire).
	SetHorizontal
	// SetTabbed converts the container to a tabbed presentation.
	SetTabbed
)

func (a Action) String() string {
	switch a {
	case SetVertical:
		return "vertical"
	case SetHorizontal:
		return "horizontal"
	case SetTabbed:
		return "tabbed"
	}
	return "noop"
}

// Decision says what to do to one container. It is produced and
// consumed within a single loop iteration and never persisted.
type Decision struct {
	Node   int64
	Action Action
}

// Command returns the manager command realizing the decision, or an
// empty string for a noop. Note the vocabulary flip: the manager names
// layouts after the arrangement, this engine after the split line, so
// a vertical split is splith on the wire and vice versa.
func (d Decision) Command() string {
	switch d.Action {
	case SetVertical:
		return fmt.Sprintf("[con_id=%d] layout splith", d.Node)
	case SetHorizontal:
		return fmt.Sprintf("[con_id=%d] layout splitv", d.Node)
	case SetTabbed:
		return fmt.Sprintf("[con_id=%d] layout tabbed", d.Node)
	}
	return ""
}

// Decide computes the split decision for a freshly created container.
//
// The target of the decision is the container's direct parent, since
// that is the node whose layout the command changes. Wide parents
// (width > height) get a vertical split so panes sit side by side,
// tall parents a horizontal one so panes stack; a square parent breaks
// the tie toward vertical. A workspace on a portrait output never gets
// a horizontal split regardless of the parent's own shape. Parents the
// user has put in tabbed or stacked mode are left alone, a parent
// already holding three or more children is an arrangement the user
// made and stays untouched, and a decision matching the parent's
// current layout is a noop so no command is ever re-issued.
func Decide(snap *Snapshot, node int64) Decision {
	noop := Decision{Node: node, Action: Noop}

	parent := snap.Parent(node)
	if parent == nil {
		return noop
	}
	switch parent.Layout {
	case i3.LayoutTabbed, i3.LayoutStacked:
		return noop
	}
	// The new leaf must have joined a previously single-child or
	// empty container; anything fuller is a deliberate layout.
	if len(parent.Nodes) > 2 {
		return noop
	}
	if parent.Rect.Width <= 0 || parent.Rect.Height <= 0 {
		return noop
	}

	preferred := SetHorizontal
	if parent.Rect.Width >= parent.Rect.Height {
		preferred = SetVertical
	}
	if workspace := snap.Workspace(node); workspace != nil && tall(workspace.Rect) {
		// Horizontal splits waste a portrait monitor.
		preferred = SetVertical
	}

	if applied(parent.Layout) == preferred {
		return Decision{Node: parent.ID, Action: Noop}
	}
	return Decision{Node: parent.ID, Action: preferred}
}

// TabDecision is the unconditional tabbed conversion of one
// container. It bypasses the automatic engine entirely.
func TabDecision(node int64) Decision {
	return Decision{Node: node, Action: SetTabbed}
}

// tall reports a portrait rectangle. Squares count as tall.
func tall(r i3.Rect) bool {
	return r.Height >= r.Width
}

// applied maps a node's current layout to the action that would have
// produced it, inverting the split-line naming the same way Command
// does.
func applied(layout string) Action {
	switch layout {
	case i3.LayoutSplitH:
		return SetVertical
	case i3.LayoutSplitV:
		return SetHorizontal
	case i3.LayoutTabbed:
		return SetTabbed
	}
	return Noop
}
