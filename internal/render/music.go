package render

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"ml-universe/internal/audio"
)

// Music is a looping raylib music stream. It satisfies audio.Player.
type Music struct {
	stream  rl.Music
	paused  bool
	started bool
}

// OpenMusic opens the audio device and loads path. Errors wrap audio.ErrUnavailable.
// Call after the window exists.
func OpenMusic(path string, volume float32) (*Music, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no track configured", audio.ErrUnavailable)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnavailable, err)
	}
	if !rl.IsAudioDeviceReady() {
		rl.InitAudioDevice()
	}
	if !rl.IsAudioDeviceReady() {
		return nil, fmt.Errorf("%w: no audio device", audio.ErrUnavailable)
	}
	stream := rl.LoadMusicStream(path)
	if !rl.IsMusicValid(stream) {
		rl.CloseAudioDevice()
		return nil, fmt.Errorf("%w: cannot decode %s", audio.ErrUnavailable, path)
	}
	stream.Looping = true
	rl.SetMusicVolume(stream, volume)
	return &Music{stream: stream}, nil
}

func (m *Music) Play() error {
	switch {
	case m.paused:
		rl.ResumeMusicStream(m.stream)
	case !m.started:
		rl.PlayMusicStream(m.stream)
	}
	m.started, m.paused = true, false
	if !rl.IsMusicStreamPlaying(m.stream) {
		return fmt.Errorf("%w: stream did not start", audio.ErrUnavailable)
	}
	return nil
}

func (m *Music) Pause() {
	rl.PauseMusicStream(m.stream)
	m.paused = true
}

func (m *Music) Rewind() {
	rl.SeekMusicStream(m.stream, 0)
}

func (m *Music) Update() {
	rl.UpdateMusicStream(m.stream)
}

func (m *Music) Close() error {
	rl.UnloadMusicStream(m.stream)
	rl.CloseAudioDevice()
	return nil
}
