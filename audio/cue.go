package audio

// Cue is a short synthesised sound tied to a client event
type Cue uint8

const (
	CueSpawn      Cue = iota // spawn request sent
	CueMove                  // move order sent
	CueConnect               // transport connected
	CueDisconnect            // transport lost
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueSpawn:
		return "spawn"
	case CueMove:
		return "move"
	case CueConnect:
		return "connect"
	case CueDisconnect:
		return "disconnect"
	}
	return "unknown"
}

// Config controls the cue player
type Config struct {
	Muted      bool
	Volume     float64 // master, 0..1
	SampleRate int
	BufferSize int // speaker buffer in milliseconds
}

// DefaultConfig returns unmuted playback at 48kHz with a 100ms buffer
func DefaultConfig() Config {
	return Config{
		Volume:     0.6,
		SampleRate: 48000,
		BufferSize: 100,
	}
}
