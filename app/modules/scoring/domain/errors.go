package scoringdomain

import "errors"

var (
	// ErrBothContracts is returned when both teams announce a contract in the same round.
	ErrBothContracts = errors.New("only one team can hold a contract")

	// ErrSameRemark is returned when both teams declare the same non-empty remark.
	ErrSameRemark = errors.New("both teams cannot declare the same remark")

	// ErrBeloteCap is returned when the declared belote of both teams exceeds 80.
	ErrBeloteCap = errors.New("combined belote cannot exceed 80")

	// ErrInvalidContract is returned for a contract outside the announceable set.
	ErrInvalidContract = errors.New("invalid contract")

	// ErrInvalidAchieved is returned for achieved points outside 0..160 or an unknown label.
	ErrInvalidAchieved = errors.New("invalid achieved points")

	// ErrInvalidBelote is returned when a belote value is negative or not a multiple of 20.
	// Both partners of the holding side may flag belote, so a single team may carry
	// 40 or more; only the combined total is bounded, by MaxCombinedBelote.
	ErrInvalidBelote = errors.New("invalid belote")

	// ErrInvalidRemark is returned when a remark cannot be declared by a player.
	ErrInvalidRemark = errors.New("invalid remark")

	// ErrMatchFinished is returned when a transition is attempted on a finished match.
	ErrMatchFinished = errors.New("match is already finished")

	// ErrNoRounds is returned when undoing a round on an empty history.
	ErrNoRounds = errors.New("no rounds to undo")

	// ErrInvalidThreshold is returned for a victory threshold other than 1000, 2000 or 3000.
	ErrInvalidThreshold = errors.New("invalid victory threshold")

	// ErrInvalidDealer is returned for a dealer seat outside 0..3.
	ErrInvalidDealer = errors.New("invalid dealer seat")

	// ErrInvalidSuit is returned for an unknown trump marker.
	ErrInvalidSuit = errors.New("invalid suit")

	// ErrInvalidSide is returned when a side other than A or B is supplied.
	ErrInvalidSide = errors.New("invalid side")
)
