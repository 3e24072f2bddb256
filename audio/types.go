package audio

// Cue identifies a traffic sound cue
type Cue int

const (
	CueSpawn Cue = iota // Car entered at an entrance
	CueExit             // Car drove off the grid
	CueJam              // Most cars blocked in one tick
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueSpawn:
		return "spawn"
	case CueExit:
		return "exit"
	case CueJam:
		return "jam"
	default:
		return "unknown"
	}
}
