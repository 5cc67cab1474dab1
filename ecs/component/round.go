package component

type RoundPhase int

const (
	RoundStarting RoundPhase = iota
	RoundPlaying
	RoundEnding
	MatchOver
)

func (p RoundPhase) String() string {
	switch p {
	case RoundStarting:
		return "starting"
	case RoundPlaying:
		return "playing"
	case RoundEnding:
		return "ending"
	case MatchOver:
		return "match_over"
	default:
		return "unknown"
	}
}

// Round is the match state, kept on a single entity.
type Round struct {
	Phase       RoundPhase
	Number      int
	Timer       float64
	Elapsed     float64
	RoundsToWin int
	StartDelay  float64
	EndDelay    float64

	// RoundWinner and MatchWinner hold player numbers; zero means none yet.
	RoundWinner int
	MatchWinner int
	Message     string
	MatchID     string
}

var RoundComponent = NewComponent[Round]()
