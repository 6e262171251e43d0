package domain

// State is the top-level state of the generator.
type State int

const (
	StateMenu State = iota
	StateSyncing
	StatePreview
	StateMetadata
	StateQuitting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateSyncing:
		return "syncing"
	case StatePreview:
		return "preview"
	case StateMetadata:
		return "metadata"
	case StateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}
