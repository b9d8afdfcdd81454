package engine

import (
	"errors"
	"fmt"
)

var (
	ErrConfig              = errors.New("invalid game configuration")
	ErrNoParticipants      = fmt.Errorf("%w: at least one participant is required", ErrConfig)
	ErrTooManyParticipants = fmt.Errorf("%w: at most %d participants", ErrConfig, MaxParticipants)
	ErrDuplicateName       = fmt.Errorf("%w: participant names must be unique", ErrConfig)
	ErrNoStrategy          = fmt.Errorf("%w: participant has no strategy", ErrConfig)

	ErrProtocolViolation = errors.New("protocol violation")
	ErrTurnLimit         = errors.New("turn limit reached before the game ended")
	ErrAlreadyPlayed     = errors.New("game already played")
	ErrNoSuchSeat        = errors.New("no participant at that seat")
)

// ProtocolViolation reports a decision-maker that answered with something
// other than one of the offered options, or failed while deciding. It ends
// the whole game.
type ProtocolViolation struct {
	Participant string
	Phase       Phase
	Reason      string
	Decision    Decision // the rejected answer, if any
	Err         error    // the decision-maker's own error, if any
}

func (v *ProtocolViolation) Error() string {
	msg := fmt.Sprintf("protocol violation by %s in %s phase: %s", v.Participant, v.Phase, v.Reason)
	if v.Err != nil {
		msg += ": " + v.Err.Error()
	}
	return msg
}

func (v *ProtocolViolation) Unwrap() error { return v.Err }

func (v *ProtocolViolation) Is(target error) bool { return target == ErrProtocolViolation }
