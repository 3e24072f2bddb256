package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope shapes s over duration; sustain fills whatever attack and release leave
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; zero or negative volume is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateSpawnSound is a short rising two-note chirp
func CreateSpawnSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// E5 then A5
	n1 := NewEnvelope(NewOscillator(659.25, SpawnNoteDuration, WaveSine, rate), SpawnNoteDuration, SpawnAttack, SpawnRelease, rate)
	n2 := NewEnvelope(NewOscillator(880.0, SpawnNoteDuration, WaveSine, rate), SpawnNoteDuration, SpawnAttack, SpawnRelease, rate)

	return newVolume(beep.Seq(n1, n2), cfg.CueVolumes[CueSpawn]*cfg.MasterVolume)
}

// CreateExitSound is a filtered noise swish
func CreateExitSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, ExitDuration, WaveNoise, rate)
	body := NewOscillator(220.0, ExitDuration, WaveSine, rate)
	mixed := beep.Mix(newVolume(noise, 0.4), newVolume(body, 0.6))
	shaped := NewEnvelope(mixed, ExitDuration, ExitAttack, ExitRelease, rate)

	return newVolume(shaped, cfg.CueVolumes[CueExit]*cfg.MasterVolume)
}

// CreateJamSound is a low horn-like buzz
func CreateJamSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(110.0, JamDuration, WaveSaw, rate)
	fifth := NewOscillator(164.81, JamDuration, WaveSaw, rate)
	mixed := beep.Mix(newVolume(fund, 0.6), newVolume(fifth, 0.4))
	shaped := NewEnvelope(mixed, JamDuration, JamAttack, JamRelease, rate)

	return newVolume(shaped, cfg.CueVolumes[CueJam]*cfg.MasterVolume)
}

// CueSound returns the streamer for c, nil for unknown cues
func CueSound(c Cue, cfg *Config) beep.Streamer {
	switch c {
	case CueSpawn:
		return CreateSpawnSound(cfg)
	case CueExit:
		return CreateExitSound(cfg)
	case CueJam:
		return CreateJamSound(cfg)
	default:
		return nil
	}
}
