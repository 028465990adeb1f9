package consensus

import "errors"

var (
	// ErrInvalidBlock rejects a single staged block. The drain continues
	// with the remaining candidates.
	ErrInvalidBlock = errors.New("invalid block")
	// ErrWrongRegime rejects a block whose style does not match the
	// dispatch phase.
	ErrWrongRegime = errors.New("block does not match the active approver regime")
)
