// Package service runs the long-lived autolayout loop and the
// one-shot manager operations built on it.
package service

import (
	"log"

	"github.com/pkg/errors"

	"i3split/pkg/i3"
	"i3split/pkg/layout"
)

// Runner executes manager commands. *i3.Client satisfies it.
type Runner interface {
	RunCommand(command string) error
}

// Service owns the two manager connections and the control loop: one
// connection delivers events, the other serves tree queries and
// commands. Everything runs on the caller's goroutine, strictly
// sequentially; there is at most one in-flight decision at a time.
type Service struct {
	events  *i3.Client
	control *i3.Client
	notify  func(layout.Decision)
}

// New connects to the manager and subscribes to window and workspace
// events. An empty socketPath means discover it.
func New(socketPath string) (*Service, error) {
	log.Printf("Connecting to the window manager")

	control, err := i3.Connect(socketPath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create the command connection")
	}

	events, err := i3.Connect(socketPath)
	if err != nil {
		control.Close()
		return nil, errors.Wrap(err, "cannot create the event connection")
	}

	if err := events.Subscribe(i3.EventWindow, i3.EventWorkspace); err != nil {
		events.Close()
		control.Close()
		return nil, err
	}
	log.Printf("Subscribed to window and workspace events")

	return &Service{events: events, control: control}, nil
}

// OnDecision registers a hook invoked after every dispatched (non-noop)
// decision. Must be set before Run.
func (s *Service) OnDecision(fn func(layout.Decision)) {
	s.notify = fn
}

// Run drives the loop forever: block for an event, rebuild the tree
// snapshot, decide, dispatch. It returns only on a fatal error; there
// is no internal reconnect, restart policy belongs to the process
// supervisor.
func (s *Service) Run() error {
	for {
		event, err := s.events.NextEvent()
		if err != nil {
			return errors.Wrap(err, "cannot receive event")
		}

		decision, err := s.step(event)
		if err != nil {
			return err
		}
		if decision.Action == layout.Noop {
			continue
		}

		if err := Apply(s.control, decision); err != nil {
			return err
		}
		if s.notify != nil {
			s.notify(decision)
		}
	}
}

// step interprets one event against a fresh snapshot. Only a freshly
// created window can trigger a decision: acting on focus or move
// events would fight splits the user just made by hand.
func (s *Service) step(event *i3.Event) (layout.Decision, error) {
	if event.Kind != i3.EventWindow || event.Change != i3.WindowNew || event.Container == nil {
		return layout.Decision{}, nil
	}

	root, err := s.control.GetTree()
	if err != nil {
		return layout.Decision{}, errors.Wrap(err, "cannot fetch a tree snapshot")
	}
	return layout.Decide(layout.NewSnapshot(root), event.Container.ID), nil
}

// Close closes both manager connections.
func (s *Service) Close() error {
	err := s.events.Close()
	if cerr := s.control.Close(); err == nil {
		err = cerr
	}
	return err
}

// Apply sends the command realizing a decision. Noops send nothing at
// all, avoiding needless round-trips and layout flicker.
func Apply(runner Runner, decision layout.Decision) error {
	command := decision.Command()
	if command == "" {
		return nil
	}

	if err := runner.RunCommand(command); err != nil {
		return errors.Wrapf(err, "cannot apply %s layout to container %d", decision.Action, decision.Node)
	}
	log.Printf("Applied %s layout to container %d", decision.Action, decision.Node)
	return nil
}
