package game

import "errors"

// Game error taxonomy. All of these are recoverable and scoped to the
// originating connection; none terminates a connection or corrupts shared
// state.
var (
	ErrRoomNotFound         = errors.New("ROOM_NOT_FOUND")
	ErrRoomFull             = errors.New("ROOM_FULL")
	ErrRoomNotJoinable      = errors.New("ROOM_NOT_JOINABLE")
	ErrPlayerNotFound       = errors.New("PLAYER_NOT_FOUND")
	ErrInvalidSubmission    = errors.New("INVALID_SUBMISSION")
	ErrWordNotInDictionary  = errors.New("WORD_NOT_IN_DICTIONARY")
	ErrBoosterNotAvailable  = errors.New("BOOSTER_NOT_AVAILABLE")
	ErrMalformedMessage     = errors.New("MALFORMED_MESSAGE")
	ErrNotHost              = errors.New("NOT_HOST")
	ErrNotAllReady          = errors.New("NOT_ALL_READY")
	ErrNotEnoughPlayers     = errors.New("NOT_ENOUGH_PLAYERS")
	ErrNoActiveSession      = errors.New("NO_ACTIVE_SESSION")
)
