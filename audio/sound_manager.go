package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/traffic-grid/engine"
)

// SoundManager turns tick reports into sound cues mixed onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	play        func(beep.Streamer)
	initialized bool
	speakerOpen bool
	enabled     bool
	played      [cueCount]int
}

// NewSoundManager creates a manager; nil cfg uses DefaultConfig
// Cues are dropped until Initialize succeeds
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:     cfg,
		mixer:   &beep.Mixer{},
		enabled: true,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.speakerOpen = true

	sm.attachLocked(func(s beep.Streamer) {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	})
	return nil
}

func (sm *SoundManager) attachLocked(play func(beep.Streamer)) {
	sm.play = play
	sm.initialized = true
}

// Cleanup silences pending cues and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.speakerOpen {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
		speaker.Close()
		sm.speakerOpen = false
	}
	sm.play = nil
	sm.initialized = false
}

// Enabled reports whether cues are audible
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.enabled && sm.initialized
}

func (sm *SoundManager) SetEnabled(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = on
}

// Toggle flips the mute switch and returns whether cues are now audible
func (sm *SoundManager) Toggle() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = !sm.enabled
	return sm.enabled && sm.initialized
}

// Play mixes a cue if audio is up and unmuted
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.enabled || sm.play == nil {
		return
	}
	s := CueSound(c, sm.cfg)
	if s == nil {
		return
	}
	sm.played[c]++
	sm.play(s)
}

// OnTick plays at most one cue of each kind per tick
func (sm *SoundManager) OnTick(r engine.TickReport) {
	if r.Spawned > 0 {
		sm.Play(CueSpawn)
	}
	if r.Exited > 0 {
		sm.Play(CueExit)
	}
	if r.Cars > 0 && float64(r.Blocked)/float64(r.Cars) >= sm.cfg.JamRatio {
		sm.Play(CueJam)
	}
}

// Played returns how many times c was mixed
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return sm.played[c]
}
