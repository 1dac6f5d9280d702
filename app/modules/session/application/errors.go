package sessionservice

import (
	"errors"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
)

var (
	// ErrInvalidTeam is returned when a team has neither a name nor players.
	ErrInvalidTeam = errors.New("team needs a name or two players")

	// ErrInvalidSince is returned when a history filter cannot be parsed.
	ErrInvalidSince = errors.New("unrecognized since expression")

	// ErrFinishedSession is returned when undoing a round of a finished session.
	ErrFinishedSession = errors.New("finished sessions cannot be rewound")
)

var validationErrors = []error{
	ErrInvalidTeam,
	ErrInvalidSince,
	ErrFinishedSession,
	scoringdomain.ErrBothContracts,
	scoringdomain.ErrSameRemark,
	scoringdomain.ErrBeloteCap,
	scoringdomain.ErrInvalidContract,
	scoringdomain.ErrInvalidAchieved,
	scoringdomain.ErrInvalidBelote,
	scoringdomain.ErrInvalidRemark,
	scoringdomain.ErrMatchFinished,
	scoringdomain.ErrNoRounds,
	scoringdomain.ErrInvalidThreshold,
	scoringdomain.ErrInvalidDealer,
	scoringdomain.ErrInvalidSuit,
	scoringdomain.ErrInvalidSide,
}

// IsValidationError reports whether err is a rejected request rather than
// an infrastructure failure.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
