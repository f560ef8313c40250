package term

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sounds plays the cues of the terminal game.
type Sounds interface {
	Tick()
	Lose()
	Win()
	Close()
}

type silent struct{}

func (silent) Tick()  {}
func (silent) Lose()  {}
func (silent) Win()   {}
func (silent) Close() {}

type tone struct {
	freq     float64
	duration time.Duration
}

type speakerSounds struct{}

// NewSounds opens the default audio device. When it cannot be opened the
// returned Sounds stays silent and the error says why.
func NewSounds(enabled bool) (Sounds, error) {
	if !enabled {
		return silent{}, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return silent{}, fmt.Errorf("unable to open audio device: %w", err)
	}
	return speakerSounds{}, nil
}

// melody chains tones into one streamer.
func melody(tones ...tone) (beep.Streamer, error) {
	streamers := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, err
		}
		streamers = append(streamers, beep.Take(sampleRate.N(t.duration), sine))
	}
	return beep.Seq(streamers...), nil
}

func (speakerSounds) play(tones ...tone) {
	s, err := melody(tones...)
	if err != nil {
		return
	}
	speaker.Play(s)
}

func (s speakerSounds) Tick() {
	s.play(tone{880, 30 * time.Millisecond})
}

func (s speakerSounds) Lose() {
	s.play(
		tone{330, 150 * time.Millisecond},
		tone{220, 150 * time.Millisecond},
		tone{110, 300 * time.Millisecond},
	)
}

func (s speakerSounds) Win() {
	s.play(
		tone{523, 120 * time.Millisecond},
		tone{659, 120 * time.Millisecond},
		tone{784, 120 * time.Millisecond},
		tone{1047, 240 * time.Millisecond},
	)
}

func (speakerSounds) Close() {
	speaker.Close()
}
