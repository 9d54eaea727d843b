package engine

import "errors"

// Validation errors. These reject an action without mutating state; the
// caller decides whether to re-prompt the decision provider or fall back.
var (
	ErrTooFewCards        = errors.New("must play at least 1 card")
	ErrTooManyCards       = errors.New("cannot play more than 3 cards")
	ErrCardNotInHand      = errors.New("card not in hand")
	ErrFaceOutOfRange     = errors.New("face value must be between 1 and 6")
	ErrNonPositiveCount   = errors.New("bid count must be at least 1")
	ErrBidTooLow          = errors.New("bid must be higher than the current bid")
	ErrNothingToChallenge = errors.New("no prior action to challenge")
)

// ErrNoBidToChallenge marks a dice challenge resolved with no standing bid.
// Unlike the validation errors above this is a caller bug: the control loop
// must not offer a challenge before any bid exists.
var ErrNoBidToChallenge = errors.New("no bid to challenge")
