package service

import (
	"github.com/pkg/errors"

	"i3split/pkg/i3"
	"i3split/pkg/layout"
)

// TabMode converts the currently focused container to a tabbed layout.
// It is a one-shot user-invoked override, independent of the running
// autolayout loop: transient connection, single command.
func TabMode(socketPath string) error {
	client, err := i3.Connect(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	return tabFocused(client)
}

// tabFocused resolves the active workspace from the workspace list and
// tabs the focused container inside it. Scoping the focus search to
// that workspace keeps a stale focus flag on another output from being
// tabbed by mistake.
func tabFocused(client *i3.Client) error {
	workspaces, err := client.GetWorkspaces()
	if err != nil {
		return err
	}

	var active *i3.Workspace
	for i := range workspaces {
		if workspaces[i].Focused {
			active = &workspaces[i]
			break
		}
	}
	if active == nil {
		return errors.New("cannot detect the active workspace")
	}

	root, err := client.GetTree()
	if err != nil {
		return err
	}

	focused := layout.NewSnapshot(root).FocusedWithin(active.ID)
	if focused == nil {
		return errors.New("cannot detect the focused container")
	}
	return Apply(client, layout.TabDecision(focused.ID))
}
