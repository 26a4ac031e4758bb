package shaper

import (
	"log"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Device is an audio output device pulling samples from an Engine.
type Device interface {
	// Close stops the playback and releases the device.
	Close() error
}

// Opener opens an audio output device which periodically pulls samples from s.
type Opener func(s Streamer) (Device, error)

// State tells whether an Engine is bound to an audio output device.
type State int

const (
	// Uninitialized engines have no device. They can still be streamed from manually.
	Uninitialized State = iota
	// Active engines are bound to a device which streams from them on its own schedule.
	Active
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	}
	return "unknown"
}

// Engine owns a Wave and the audio device playing it, and makes them safe to use from multiple
// goroutines. Typically, a UI goroutine adds nodes and changes the frequency while the device
// calls Stream from its own goroutine.
//
// All methods take the same lock. Stream holds it only for the bounded, allocation-free work
// of filling the samples.
type Engine struct {
	mu     sync.Mutex
	wave   Wave
	device Device
	logger *log.Logger

	bindMu sync.Mutex // serializes Bind and Unbind
}

// NewEngine creates an unbound Engine playing a Wave made of the seed nodes at frequency 1.
// Invalid seed nodes are dropped and logged.
func NewEngine(seed ...Node) *Engine {
	e := &Engine{
		wave:   Wave{freq: 1},
		logger: log.New(os.Stderr, "shaper: ", log.LstdFlags),
	}
	for _, n := range seed {
		if err := e.wave.Insert(n); err != nil {
			e.logger.Printf("seed node %v dropped: %v", n, err)
		}
	}
	return e
}

// SetLogger replaces the logger diagnostics are reported to. A nil logger disables them.
func (e *Engine) SetLogger(logger *log.Logger) {
	e.mu.Lock()
	e.logger = logger
	e.mu.Unlock()
}

// AddNode inserts a node into the wave. A node at an already occupied phase is skipped,
// reported to the logger and ErrDuplicatePhase is returned.
func (e *Engine) AddNode(phase, amplitude float64) error {
	n := Node{Phase: phase, Amplitude: amplitude}
	e.mu.Lock()
	err := e.wave.Insert(n)
	logger := e.logger
	e.mu.Unlock()

	if err != nil {
		logf(logger, "node %v not added: %v", n, err)
		return errors.WithMessage(err, "add node")
	}
	return nil
}

// RemoveNode deletes the node at exactly phase and reports whether it existed.
func (e *Engine) RemoveNode(phase float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wave.Remove(phase)
}

// Load replaces all nodes of the wave and rewinds it.
func (e *Engine) Load(nodes []Node) error {
	e.mu.Lock()
	err := e.wave.Replace(nodes)
	e.mu.Unlock()
	return errors.WithMessage(err, "load nodes")
}

// SetFrequency sets the frequency multiplier, clamped to [0, MaxFrequency].
func (e *Engine) SetFrequency(freq float64) {
	e.mu.Lock()
	e.wave.SetFrequency(freq)
	e.mu.Unlock()
}

// AdjustFrequency adds delta to the frequency multiplier and returns the clamped result.
func (e *Engine) AdjustFrequency(delta float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.wave.SetFrequency(e.wave.Frequency() + delta)
	return e.wave.Frequency()
}

// Frequency returns the frequency multiplier.
func (e *Engine) Frequency() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wave.Frequency()
}

// Nodes returns a snapshot of the nodes sorted by phase.
func (e *Engine) Nodes() []Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wave.Nodes()
}

// Phase returns the phase of the playhead, see Wave.Phase.
func (e *Engine) Phase() (phase float64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wave.Phase()
}

// Degenerate returns how many sub-sample segments have been played, see Wave.Degenerate.
func (e *Engine) Degenerate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wave.Degenerate()
}

// Stream fills samples from the wave. It's meant to be called by the audio device, or manually
// when the Engine is Uninitialized. Stream never drains and never fails.
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	n, ok = e.wave.Stream(samples)
	e.mu.Unlock()
	return n, ok
}

// Err always returns nil.
func (e *Engine) Err() error {
	return nil
}

// State returns whether the Engine is bound to a device.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.device != nil {
		return Active
	}
	return Uninitialized
}

// Bind opens an audio output device streaming from the Engine. Binding an Active Engine does
// nothing. If the device can't be opened, the Engine stays Uninitialized and the returned
// error's cause is ErrDeviceUnavailable.
//
// The device is opened without holding the Engine's lock, so open may pull samples right away.
func (e *Engine) Bind(open Opener) error {
	e.bindMu.Lock()
	defer e.bindMu.Unlock()

	if e.State() == Active {
		return nil
	}
	device, err := open(e)
	if err != nil {
		return errors.Wrapf(ErrDeviceUnavailable, "bind: %v", err)
	}
	if device == nil {
		return errors.Wrap(ErrDeviceUnavailable, "bind: opener returned no device")
	}

	e.mu.Lock()
	e.device = device
	logger := e.logger
	e.mu.Unlock()

	logf(logger, "audio device bound")
	return nil
}

// Unbind closes the device the Engine is bound to. Unbinding an Uninitialized Engine does
// nothing. Errors from closing the device are only logged.
func (e *Engine) Unbind() {
	e.bindMu.Lock()
	defer e.bindMu.Unlock()

	e.mu.Lock()
	device := e.device
	e.device = nil
	logger := e.logger
	e.mu.Unlock()

	if device == nil {
		return
	}
	if err := device.Close(); err != nil {
		logf(logger, "closing audio device: %v", err)
		return
	}
	logf(logger, "audio device unbound")
}

func logf(logger *log.Logger, format string, v ...interface{}) {
	if logger != nil {
		logger.Printf(format, v...)
	}
}
