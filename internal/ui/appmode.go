package ui

// AppMode is the top-level layout: the full chrome, or the diagram alone.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeFullscreen
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeFullscreen:
		return "Fullscreen"
	default:
		return "Unknown"
	}
}
