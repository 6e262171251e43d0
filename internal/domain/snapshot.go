package domain

// Content is a snapshot of the content panel. It holds everything the
// render side needs for one pass; the engine never draws anything itself.
type Content struct {
	Title    string
	Lines    []string
	Hints    []string
	Emphasis bool // rendered centred and highlighted, e.g. "PAUSED"
}

// MenuItem is one (key, action) pair of a menu.
type MenuItem struct {
	Key    string
	Action string
}

// Menu is a snapshot of the menu panel. A menu with Final set is the
// last value the engine ever produces; the render side stops on it.
type Menu struct {
	Title string
	Items []MenuItem
	Final bool
}
