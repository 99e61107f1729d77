package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// Player plays sound effects without blocking the caller.
type Player interface {
	Play(e Effect)
}

// Nop is a silent Player.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Effect) {}

// Synth plays effects through the system audio device.
type Synth struct {
	ctx     *oto.Context
	ready   chan struct{}
	volume  float64
	samples map[Effect][]byte
}

// NewSynth opens the audio device. volume is clamped to [0, 1].
func NewSynth(volume float64) (*Synth, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open device: %w", err)
	}
	s := &Synth{
		ctx:     ctx,
		ready:   ready,
		volume:  min(max(volume, 0), 1),
		samples: make(map[Effect][]byte),
	}
	for _, e := range []Effect{EffectFlap, EffectPoint, EffectCrash} {
		s.samples[e] = Generate(e)
	}
	return s, nil
}

// Play starts e on its own player. Effects are dropped until the device is ready.
func (s *Synth) Play(e Effect) {
	select {
	case <-s.ready:
	default:
		return
	}
	data := s.samples[e]
	if len(data) == 0 || s.volume <= 0 {
		return
	}
	go func() {
		player := s.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(s.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
