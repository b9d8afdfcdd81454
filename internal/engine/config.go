package engine

// MaxParticipants is the largest table the engine accepts.
const MaxParticipants = 4

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Seed     uint64   // shuffle seed; equal seeds and strategies replay identically
	MaxTurns int      // 0 means no limit
	Observer Observer // optional event sink
}

func DefaultConfig() GameConfig {
	return GameConfig{}
}
