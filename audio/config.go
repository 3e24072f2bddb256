package audio

import (
	"os"
	"strconv"
	"time"
)

// Cue timing
const (
	SpawnNoteDuration = 45 * time.Millisecond
	SpawnAttack       = 5 * time.Millisecond
	SpawnRelease      = 25 * time.Millisecond

	ExitDuration = 90 * time.Millisecond
	ExitAttack   = 10 * time.Millisecond
	ExitRelease  = 60 * time.Millisecond

	JamDuration = 180 * time.Millisecond
	JamAttack   = 10 * time.Millisecond
	JamRelease  = 80 * time.Millisecond
)

// Config holds mixing parameters
type Config struct {
	SampleRate   int
	MasterVolume float64
	CueVolumes   [cueCount]float64

	// JamRatio is the blocked/cars fraction that triggers CueJam
	JamRatio float64
}

func DefaultConfig() *Config {
	return &Config{
		SampleRate:   44100,
		MasterVolume: 0.5,
		CueVolumes: [cueCount]float64{
			CueSpawn: 0.4,
			CueExit:  0.3,
			CueJam:   0.5,
		},
		JamRatio: 0.75,
	}
}

// LoadConfig applies TRAFFIC_GRID_VOLUME (0-100) and TRAFFIC_GRID_SAMPLE_RATE over the defaults
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if volume := os.Getenv("TRAFFIC_GRID_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if sampleRate := os.Getenv("TRAFFIC_GRID_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
