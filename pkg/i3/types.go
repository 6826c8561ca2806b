package i3

// Rect is a rectangle reported by the window manager, in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Layout values reported in a tree node's "layout" field.
const (
	LayoutSplitH  = "splith"
	LayoutSplitV  = "splitv"
	LayoutStacked = "stacked"
	LayoutTabbed  = "tabbed"
	LayoutOutput  = "output"
	LayoutNone    = "none"
)

// Node type values reported in a tree node's "type" field.
const (
	NodeRoot      = "root"
	NodeOutput    = "output"
	NodeCon       = "con"
	NodeFloating  = "floating_con"
	NodeWorkspace = "workspace"
	NodeDockarea  = "dockarea"
)

// Node is one container in the manager's layout tree. Replies are
// decoded leniently: fields this daemon does not know about are
// ignored so newer manager versions keep working.
type Node struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Layout        string `json:"layout"`
	Orientation   string `json:"orientation"`
	Rect          Rect   `json:"rect"`
	WindowRect    Rect   `json:"window_rect"`
	Window        int64  `json:"window"`
	Num           int    `json:"num"`
	Focused       bool   `json:"focused"`
	Urgent        bool   `json:"urgent"`
	Nodes         []Node `json:"nodes"`
	FloatingNodes []Node `json:"floating_nodes"`
}

// Leaf reports whether the node holds an actual window rather than a
// split group of children.
func (n *Node) Leaf() bool {
	return len(n.Nodes) == 0
}

// Workspace is one entry of the workspaces reply.
type Workspace struct {
	ID      int64  `json:"id"`
	Num     int    `json:"num"`
	Name    string `json:"name"`
	Output  string `json:"output"`
	Rect    Rect   `json:"rect"`
	Focused bool   `json:"focused"`
	Visible bool   `json:"visible"`
	Urgent  bool   `json:"urgent"`
}

// Version is the manager version reply.
type Version struct {
	Major                int    `json:"major"`
	Minor                int    `json:"minor"`
	Patch                int    `json:"patch"`
	HumanReadable        string `json:"human_readable"`
	LoadedConfigFileName string `json:"loaded_config_file_name"`
}

// CommandResult is one entry of a command reply. A single command
// message can produce several results.
type CommandResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Event kinds accepted by Subscribe.
const (
	EventWindow    = "window"
	EventWorkspace = "workspace"
)

// WindowNew is the change value of a window creation event, the only
// change the daemon acts on; every other change value passes through
// the loop untouched.
const WindowNew = "new"

// Event is one decoded manager notification.
type Event struct {
	// Kind is EventWindow or EventWorkspace.
	Kind string
	// Change is the manager's change value, e.g. "new" or "focus".
	Change string
	// Container is the affected container for window events.
	Container *Node
	// Current is the now-focused workspace for workspace events.
	Current *Node
}
