package i3

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Client issues requests and receives events over one connection. The
// manager interleaves replies and events on a subscribed connection,
// so a Client is used either for commands and queries or, after
// Subscribe, exclusively for NextEvent.
type Client struct {
	conn *Conn
}

// Connect dials the manager socket. An empty path means discover it
// via SocketPath.
func Connect(path string) (*Client, error) {
	if path == "" {
		discovered, err := SocketPath()
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	conn, err := Dial(path)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// NewClient wraps an existing connection. Used by tests.
func NewClient(conn *Conn) *Client {
	return &Client{conn: conn}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip sends one request and waits for its reply. The reply type
// must match the request type; anything else means the connection
// state cannot be trusted.
func (c *Client) roundTrip(kind uint32, payload []byte) ([]byte, error) {
	if err := c.conn.WriteMessage(kind, payload); err != nil {
		return nil, err
	}

	replyKind, reply, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if replyKind != kind {
		return nil, errors.Errorf("unexpected reply type %d for request type %d", replyKind, kind)
	}
	return reply, nil
}

// RunCommand executes a manager command and fails if any of its
// results reports a failure.
func (c *Client) RunCommand(command string) error {
	reply, err := c.roundTrip(msgRunCommand, []byte(command))
	if err != nil {
		return errors.Wrapf(err, "cannot execute command %q", command)
	}

	var results []CommandResult
	if err := json.Unmarshal(reply, &results); err != nil {
		return errors.Wrap(err, "malformed command reply")
	}
	for _, result := range results {
		if !result.Success {
			message := result.Error
			if message == "" {
				message = "N/A"
			}
			return errors.Errorf("command %q returned a failure response: %s", command, message)
		}
	}
	return nil
}

// RunOnNode executes a command scoped to one container id.
func (c *Client) RunOnNode(id int64, command string) error {
	return c.RunCommand(fmt.Sprintf("[con_id=%d] %s", id, command))
}

// GetTree fetches the full container tree and returns its root node.
func (c *Client) GetTree() (*Node, error) {
	reply, err := c.roundTrip(msgGetTree, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot query the container tree")
	}

	var root Node
	if err := json.Unmarshal(reply, &root); err != nil {
		return nil, errors.Wrap(err, "malformed tree reply")
	}
	return &root, nil
}

// GetWorkspaces fetches the list of workspaces.
func (c *Client) GetWorkspaces() ([]Workspace, error) {
	reply, err := c.roundTrip(msgGetWorkspaces, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot query workspaces")
	}

	var workspaces []Workspace
	if err := json.Unmarshal(reply, &workspaces); err != nil {
		return nil, errors.Wrap(err, "malformed workspaces reply")
	}
	return workspaces, nil
}

// GetVersion fetches the manager version.
func (c *Client) GetVersion() (*Version, error) {
	reply, err := c.roundTrip(msgGetVersion, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot query the manager version")
	}

	var version Version
	if err := json.Unmarshal(reply, &version); err != nil {
		return nil, errors.Wrap(err, "malformed version reply")
	}
	return &version, nil
}

// Subscribe registers this connection for the given event kinds. After
// a successful subscription the connection must only be used for
// NextEvent.
func (c *Client) Subscribe(events ...string) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return errors.Wrap(err, "cannot encode subscription")
	}

	reply, err := c.roundTrip(msgSubscribe, payload)
	if err != nil {
		return errors.Wrapf(err, "cannot subscribe to %v", events)
	}

	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(reply, &ack); err != nil {
		return errors.Wrap(err, "malformed subscription reply")
	}
	if !ack.Success {
		return errors.Errorf("manager rejected subscription to %v", events)
	}
	return nil
}

// NextEvent blocks until the next subscribed event arrives. Event
// kinds this daemon does not decode are skipped.
func (c *Client) NextEvent() (*Event, error) {
	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind&eventFlag == 0 {
			return nil, errors.Errorf("expected an event frame, got reply type %d", kind)
		}

		switch kind &^ eventFlag {
		case eventWindow:
			var body struct {
				Change    string `json:"change"`
				Container *Node  `json:"container"`
			}
			if err := json.Unmarshal(payload, &body); err != nil {
				return nil, errors.Wrap(err, "malformed window event")
			}
			return &Event{Kind: EventWindow, Change: body.Change, Container: body.Container}, nil

		case eventWorkspace:
			var body struct {
				Change  string `json:"change"`
				Current *Node  `json:"current"`
			}
			if err := json.Unmarshal(payload, &body); err != nil {
				return nil, errors.Wrap(err, "malformed workspace event")
			}
			return &Event{Kind: EventWorkspace, Change: body.Change, Current: body.Current}, nil
		}
	}
}
