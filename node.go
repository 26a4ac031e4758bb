package shaper

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicatePhase is returned when a node is inserted at a phase that is already occupied.
	// Phases are compared exactly, without tolerance.
	ErrDuplicatePhase = errors.New("shaper: duplicate phase")

	// ErrNodeRange is returned when a node's phase is outside [0, 1) or its amplitude is outside
	// [-1, 1].
	ErrNodeRange = errors.New("shaper: node out of range")

	// ErrDeviceUnavailable is the cause of errors returned by Engine.Bind when the audio output
	// device could not be opened.
	ErrDeviceUnavailable = errors.New("shaper: audio device unavailable")
)

// Node is a control point of a wave: a position in the cyclic phase domain [0, 1) and the
// amplitude the wave passes through at that position.
type Node struct {
	Phase     float64
	Amplitude float64
}

// Validate reports ErrNodeRange if n can't be placed on a wave.
func (n Node) Validate() error {
	if math.IsNaN(n.Phase) || n.Phase < 0 || n.Phase >= 1 {
		return errors.Wrapf(ErrNodeRange, "phase %v", n.Phase)
	}
	if math.IsNaN(n.Amplitude) || n.Amplitude < -1 || n.Amplitude > 1 {
		return errors.Wrapf(ErrNodeRange, "amplitude %v", n.Amplitude)
	}
	return nil
}

func (n Node) String() string {
	return fmt.Sprintf("(%.4f, %+.4f)", n.Phase, n.Amplitude)
}
