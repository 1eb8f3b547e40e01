package pitch

// Mode is the analysis path taken for the most recent block.
type Mode uint8

const (
	// ModeQuiet means the block was too quiet to analyse.
	ModeQuiet Mode = iota
	// ModeProbing searches for a pitch with autocorrelation.
	ModeProbing
	// ModeTracking follows a trusted pitch with cross-correlation.
	ModeTracking
)

func (m Mode) String() string {
	switch m {
	case ModeQuiet:
		return "quiet"
	case ModeProbing:
		return "probing"
	case ModeTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Frame is the detector output published after one block.
type Frame struct {
	Mode       Mode
	Voiced     bool
	Quiet      bool
	Period     int     // samples, integer lag
	Pitch      float64 // Hz, interpolated
	Confidence float64
}

// Observer is notified after every analysed block.
type Observer interface {
	FrameAnalyzed(Frame)
}
