// Package sessionevents declares the messages a game session emits.
package sessionevents

import (
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	"github.com/google/uuid"
)

const (
	// MatchFinishedV1 is published once, when a round brings a team to the
	// victory threshold.
	MatchFinishedV1 = "belote.match.finished.v1"

	// SessionUpdatedV1 is the base topic of the per-session snapshot stream.
	// Messages go to SessionUpdatedV1 + "." + session ID.
	SessionUpdatedV1 = "belote.session.updated.v1"
)

// MatchFinishedPayload carries everything the leaderboard and the export
// job need about a finished match.
type MatchFinishedPayload struct {
	SessionID  uuid.UUID                `json:"session_id"`
	TeamA      scoringdomain.Team       `json:"team_a"`
	TeamB      scoringdomain.Team       `json:"team_b"`
	TotalA     int                      `json:"total_a"`
	TotalB     int                      `json:"total_b"`
	Winner     scoringdomain.Side       `json:"winner"`
	BonusMalus scoringdomain.BonusMalus `json:"bonus_malus"`
	FinishedAt time.Time                `json:"finished_at"`
}

// Team returns the team and final points of side.
func (p MatchFinishedPayload) Team(side scoringdomain.Side) (scoringdomain.Team, int) {
	if side == scoringdomain.SideB {
		return p.TeamB, p.BonusMalus.TeamB.Final
	}
	return p.TeamA, p.BonusMalus.TeamA.Final
}

// SessionUpdatedPayload announces the latest state of a session.
type SessionUpdatedPayload struct {
	SessionID uuid.UUID                `json:"session_id"`
	Action    string                   `json:"action"`
	State     scoringdomain.MatchState `json:"state"`
	Flash     *FlashAlert              `json:"flash,omitempty"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// FlashAlert is the full-screen notification raised by a round.
type FlashAlert struct {
	Alert      scoringdomain.Alert `json:"alert"`
	Side       scoringdomain.Side  `json:"side"`
	Team       string              `json:"team"`
	Message    string              `json:"message"`
	DurationMs int64               `json:"duration_ms"`
}
