package app

import "errors"

var (
	// ErrStateReset reports that structural corruption was detected and the
	// table was reset to its canonical initial state.
	ErrStateReset = errors.New("corrupt game state, table was reset")

	ErrWrongPhase       = errors.New("action not legal in current phase")
	ErrNotYourTurn      = errors.New("not this seat's turn")
	ErrSeatOutOfRange   = errors.New("seat index out of range")
	ErrTrumpNotSet      = errors.New("trump has not been called")
	ErrSittingOut       = errors.New("seat is sitting out this hand")
	ErrCardNotInHand    = errors.New("card is not in this hand")
	ErrIllegalPlay      = errors.New("card does not follow suit")
	ErrAwaitingClear    = errors.New("trick awaits clearing")
	ErrNotAwaitingClear = errors.New("no resolved trick to clear")
	ErrDealerMustCall   = errors.New("dealer must call trump")
	ErrNotCPUSeat       = errors.New("current seat is not CPU controlled")
	ErrUnknownAction    = errors.New("unknown action type")
)
