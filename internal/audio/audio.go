package audio

import (
	"errors"

	"go.uber.org/zap"
)

// ErrUnavailable is returned by players that cannot produce sound (no device, missing file).
var ErrUnavailable = errors.New("audio: playback unavailable")

// Player is a looping background track.
type Player interface {
	Play() error
	Pause()
	// Rewind seeks back to the start without changing play state.
	Rewind()
	// Update feeds the stream; call once per frame while playing.
	Update()
	Close() error
}

// Ambient plays a background track on a best-effort basis: every failure is logged at debug
// level and swallowed. When autoplay fails it retries exactly once, on the first user gesture.
// Not safe for concurrent use; call from the frame loop.
type Ambient struct {
	player  Player
	playing bool
	retried bool
	gesture <-chan struct{}
	log     *zap.Logger
}

// NewAmbient wraps p. A nil p yields an Ambient that never plays.
func NewAmbient(p Player, log *zap.Logger) *Ambient {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ambient{player: p, log: log}
}

// Start tries to play when autoplay is set. If that fails, or autoplay is off, playback is
// retried once when firstGesture closes (see Poll).
func (a *Ambient) Start(autoplay bool, firstGesture <-chan struct{}) {
	if autoplay && a.play() {
		return
	}
	a.gesture = firstGesture
}

// Poll runs once per frame: it performs the pending gesture retry and feeds the stream.
func (a *Ambient) Poll() {
	if a.gesture != nil {
		select {
		case <-a.gesture:
			a.gesture = nil
			if !a.playing && !a.retried {
				a.retried = true
				a.play()
			}
		default:
		}
	}
	if a.playing && a.player != nil {
		a.player.Update()
	}
}

func (a *Ambient) play() bool {
	if a.player == nil {
		return false
	}
	if err := a.player.Play(); err != nil {
		a.log.Debug("ambient audio did not start", zap.Error(err))
		return false
	}
	a.playing = true
	return true
}

// Pause stops playback, keeping the position.
func (a *Ambient) Pause() {
	if a.player == nil || !a.playing {
		return
	}
	a.player.Pause()
	a.playing = false
}

// Stop pauses and rewinds to the start.
func (a *Ambient) Stop() {
	a.Pause()
	if a.player != nil {
		a.player.Rewind()
	}
}

// Toggle pauses when playing and plays otherwise. It reports whether audio is now playing.
func (a *Ambient) Toggle() bool {
	if a.playing {
		a.Pause()
	} else {
		a.play()
	}
	return a.playing
}

// Playing reports whether the track is currently playing.
func (a *Ambient) Playing() bool { return a.playing }

// Close stops playback and releases the player.
func (a *Ambient) Close() error {
	if a.player == nil {
		return nil
	}
	a.Pause()
	err := a.player.Close()
	a.player = nil
	if err != nil {
		a.log.Debug("closing ambient audio", zap.Error(err))
	}
	return err
}
