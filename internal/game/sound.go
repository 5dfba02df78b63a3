package game

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/jezzball/internal/arena"
)

const (
	sampleRate          = 44100
	audioChannels       = 2
	audioBytesPerSample = 2
	audioFrameBytes     = audioChannels * audioBytesPerSample
)

// cue is one of the short synthesized effects.
type cue int

const (
	cuePop  cue = iota // a ball popped a ray
	cueWall            // a ray became a wall
	cueWin             // the round was won
	cueCount
)

// tone describes a cue as a falling sine sweep.
type tone struct {
	from, to float64 // Hz
	dur      time.Duration
	volume   float64
}

var cueTones = [cueCount]tone{
	cuePop:  {from: 880, to: 220, dur: 90 * time.Millisecond, volume: 0.35},
	cueWall: {from: 180, to: 120, dur: 140 * time.Millisecond, volume: 0.45},
	cueWin:  {from: 520, to: 1040, dur: 400 * time.Millisecond, volume: 0.3},
}

// synthTone renders a sweep as 16-bit little-endian stereo PCM with a linear
// fade-out, the format audio.Context players expect.
func synthTone(t tone, rate int) []byte {
	frames := int(t.dur.Seconds() * float64(rate))
	pcm := make([]byte, frames*audioFrameBytes)
	phase := 0.0
	for i := 0; i < frames; i++ {
		p := float64(i) / float64(frames)
		freq := t.from + (t.to-t.from)*p
		v := math.Sin(phase) * t.volume * (1 - p)
		phase += 2 * math.Pi * freq / float64(rate)
		sample := int16(v * math.MaxInt16)
		for ch := 0; ch < audioChannels; ch++ {
			base := i*audioFrameBytes + ch*audioBytesPerSample
			binary.LittleEndian.PutUint16(pcm[base:], uint16(sample))
		}
	}
	return pcm
}

// cueFor maps a SimLog entry to a sound, if it has one.
func cueFor(e arena.SimLogEntry) (cue, bool) {
	switch e.Category + "/" + e.Key {
	case "ray/popped":
		return cuePop, true
	case "wall/built":
		return cueWall, true
	case "round/won":
		return cueWin, true
	}
	return 0, false
}

// SoundBank plays the synthesized cues. A nil context makes it silent.
type SoundBank struct {
	ctx   *audio.Context
	clips [cueCount][]byte
	muted bool
}

// NewSoundBank synthesizes every cue up front.
func NewSoundBank(ctx *audio.Context) *SoundBank {
	sb := &SoundBank{ctx: ctx}
	for c := cue(0); c < cueCount; c++ {
		sb.clips[c] = synthTone(cueTones[c], sampleRate)
	}
	return sb
}

// Toggle flips mute and reports the new state.
func (sb *SoundBank) Toggle() bool {
	sb.muted = !sb.muted
	return sb.muted
}

// React plays the cue for each entry that has one. Several entries of the
// same kind in one frame play once.
func (sb *SoundBank) React(entries []arena.SimLogEntry) {
	if sb.ctx == nil || sb.muted {
		return
	}
	var played [cueCount]bool
	for _, e := range entries {
		c, ok := cueFor(e)
		if !ok || played[c] {
			continue
		}
		played[c] = true
		sb.ctx.NewPlayerFromBytes(sb.clips[c]).Play()
	}
}
