package layout

import (
	"testing"

	"i3split/pkg/i3"
)

// testSnapshot builds root -> output -> workspace -> parent container
// -> two leaf windows. The parent has id 100, the leaves 101 and 102.
func testSnapshot(workspaceRect, parentRect i3.Rect, parentLayout string) *Snapshot {
	half := i3.Rect{X: parentRect.X, Y: parentRect.Y, Width: parentRect.Width / 2, Height: parentRect.Height}
	root := &i3.Node{
		ID: 1, Type: i3.NodeRoot, Layout: i3.LayoutSplitH,
		Rect: workspaceRect,
		Nodes: []i3.Node{{
			ID: 2, Type: i3.NodeOutput, Name: "DP-1", Layout: i3.LayoutOutput,
			Rect: workspaceRect,
			Nodes: []i3.Node{{
				ID: 10, Type: i3.NodeWorkspace, Num: 1, Layout: i3.LayoutSplitH,
				Rect: workspaceRect,
				Nodes: []i3.Node{{
					ID: 100, Type: i3.NodeCon, Layout: parentLayout,
					Rect: parentRect,
					Nodes: []i3.Node{
						{ID: 101, Type: i3.NodeCon, Layout: i3.LayoutNone, Window: 11, Rect: half},
						{ID: 102, Type: i3.NodeCon, Layout: i3.LayoutNone, Window: 12, Focused: true, Rect: half},
					},
				}},
			}},
		}},
	}
	return NewSnapshot(root)
}

var (
	wideOutput = i3.Rect{Width: 1920, Height: 1080}
	tallOutput = i3.Rect{Width: 1080, Height: 1920}
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name         string
		workspace    i3.Rect
		parent       i3.Rect
		parentLayout string
		want         Action
	}{
		{
			name:      "wide container gets a vertical split",
			workspace: wideOutput, parent: i3.Rect{Width: 1920, Height: 1080},
			parentLayout: i3.LayoutNone, want: SetVertical,
		},
		{
			name:      "tall container gets a horizontal split",
			workspace: wideOutput, parent: i3.Rect{Width: 600, Height: 1200},
			parentLayout: i3.LayoutNone, want: SetHorizontal,
		},
		{
			name:      "square container breaks toward vertical",
			workspace: wideOutput, parent: i3.Rect{Width: 800, Height: 800},
			parentLayout: i3.LayoutNone, want: SetVertical,
		},
		{
			name:      "portrait output forces vertical on a wide container",
			workspace: tallOutput, parent: i3.Rect{Width: 1080, Height: 600},
			parentLayout: i3.LayoutNone, want: SetVertical,
		},
		{
			name:      "portrait output forces vertical on a tall container",
			workspace: tallOutput, parent: i3.Rect{Width: 600, Height: 1200},
			parentLayout: i3.LayoutNone, want: SetVertical,
		},
		{
			name:      "matching horizontal layout is left alone",
			workspace: wideOutput, parent: i3.Rect{Width: 600, Height: 1200},
			parentLayout: i3.LayoutSplitV, want: Noop,
		},
		{
			name:      "matching vertical layout is left alone",
			workspace: wideOutput, parent: i3.Rect{Width: 1920, Height: 1080},
			parentLayout: i3.LayoutSplitH, want: Noop,
		},
		{
			name:      "mismatched split is corrected",
			workspace: wideOutput, parent: i3.Rect{Width: 600, Height: 1200},
			parentLayout: i3.LayoutSplitH, want: SetHorizontal,
		},
		{
			name:      "tabbed parent is never overwritten",
			workspace: wideOutput, parent: i3.Rect{Width: 1920, Height: 1080},
			parentLayout: i3.LayoutTabbed, want: Noop,
		},
		{
			name:      "stacked parent is never overwritten",
			workspace: wideOutput, parent: i3.Rect{Width: 1920, Height: 1080},
			parentLayout: i3.LayoutStacked, want: Noop,
		},
		{
			name:      "degenerate rectangle is ignored",
			workspace: wideOutput, parent: i3.Rect{Width: 0, Height: 1080},
			parentLayout: i3.LayoutNone, want: Noop,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := testSnapshot(tc.workspace, tc.parent, tc.parentLayout)

			decision := Decide(snap, 102)
			if decision.Action != tc.want {
				t.Fatalf("expected action %v, got %v", tc.want, decision.Action)
			}
			if decision.Action != Noop && decision.Node != 100 {
				t.Errorf("expected decision to target the parent container 100, got %d", decision.Node)
			}
		})
	}
}

// A wide container must end up with panes side by side: the dispatched
// command halves the width, not the height, so pane ratios stay near
// the monitor's own.
func TestDecide_WideContainerCommandIsSideBySide(t *testing.T) {
	snap := testSnapshot(wideOutput, i3.Rect{Width: 1920, Height: 1080}, i3.LayoutNone)
	if got := Decide(snap, 102).Command(); got != "[con_id=100] layout splith" {
		t.Fatalf("unexpected command: %q", got)
	}
}

func TestDecide_PortraitOutputNeverHorizontal(t *testing.T) {
	rects := []i3.Rect{
		{Width: 1920, Height: 1080},
		{Width: 600, Height: 1200},
		{Width: 800, Height: 800},
		{Width: 1080, Height: 600},
	}

	for _, rect := range rects {
		decision := Decide(testSnapshot(tallOutput, rect, i3.LayoutNone), 102)
		if decision.Action == SetHorizontal {
			t.Errorf("horizontal split selected on a portrait output for parent %dx%d", rect.Width, rect.Height)
		}
	}
}

func TestDecide_UnrelatedContainerIsNoop(t *testing.T) {
	snap := testSnapshot(wideOutput, i3.Rect{Width: 1920, Height: 1080}, i3.LayoutNone)

	if got := Decide(snap, 999).Action; got != Noop {
		t.Errorf("expected noop for an unknown container, got %v", got)
	}
	// The root has no parent to act on.
	if got := Decide(snap, 1).Action; got != Noop {
		t.Errorf("expected noop for the tree root, got %v", got)
	}
}

// Once a decision has been applied and a fresh snapshot fetched, the
// same event must not produce a second command.
func TestDecide_AppliedDecisionBecomesNoop(t *testing.T) {
	snap := testSnapshot(wideOutput, i3.Rect{Width: 1920, Height: 1080}, i3.LayoutNone)

	first := Decide(snap, 102)
	if first.Action != SetVertical {
		t.Fatalf("expected a vertical split first, got %v", first.Action)
	}

	applied := testSnapshot(wideOutput, i3.Rect{Width: 1920, Height: 1080}, i3.LayoutSplitH)
	if second := Decide(applied, 102); second.Action != Noop {
		t.Fatalf("expected noop after the split was applied, got %v", second.Action)
	}
}

// A container the user already filled with three or more children is a
// deliberate arrangement; a window landing in it must not rearrange
// the whole group.
func TestDecide_CrowdedParentIsNoop(t *testing.T) {
	third := i3.Rect{Width: 640, Height: 1080}
	root := &i3.Node{
		ID: 1, Type: i3.NodeRoot, Layout: i3.LayoutSplitH,
		Rect: wideOutput,
		Nodes: []i3.Node{{
			ID: 2, Type: i3.NodeOutput, Name: "DP-1", Layout: i3.LayoutOutput,
			Rect: wideOutput,
			Nodes: []i3.Node{{
				ID: 10, Type: i3.NodeWorkspace, Num: 1, Layout: i3.LayoutSplitH,
				Rect: wideOutput,
				Nodes: []i3.Node{{
					ID: 100, Type: i3.NodeCon, Layout: i3.LayoutSplitV,
					Rect: i3.Rect{Width: 1920, Height: 1080},
					Nodes: []i3.Node{
						{ID: 101, Type: i3.NodeCon, Layout: i3.LayoutNone, Window: 11, Rect: third},
						{ID: 102, Type: i3.NodeCon, Layout: i3.LayoutNone, Window: 12, Rect: third},
						{ID: 103, Type: i3.NodeCon, Layout: i3.LayoutNone, Window: 13, Focused: true, Rect: third},
					},
				}},
			}},
		}},
	}

	if got := Decide(NewSnapshot(root), 103).Action; got != Noop {
		t.Errorf("expected noop for a three-child parent, got %v", got)
	}
}

func TestTabDecision(t *testing.T) {
	decision := TabDecision(42)
	if decision.Action != SetTabbed || decision.Node != 42 {
		t.Fatalf("unexpected decision: %+v", decision)
	}
	if got := decision.Command(); got != "[con_id=42] layout tabbed" {
		t.Errorf("unexpected command: %q", got)
	}
}

func TestDecisionCommand(t *testing.T) {
	tests := []struct {
		decision Decision
		want     string
	}{
		{Decision{Node: 7, Action: SetVertical}, "[con_id=7] layout splith"},
		{Decision{Node: 7, Action: SetHorizontal}, "[con_id=7] layout splitv"},
		{Decision{Node: 7, Action: SetTabbed}, "[con_id=7] layout tabbed"},
		{Decision{Node: 7, Action: Noop}, ""},
	}

	for _, tc := range tests {
		if got := tc.decision.Command(); got != tc.want {
			t.Errorf("Command() for %v = %q, expected %q", tc.decision.Action, got, tc.want)
		}
	}
}
