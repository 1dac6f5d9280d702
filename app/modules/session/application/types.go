package sessionservice

import (
	"strings"
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	sessiondb "github.com/Black-And-White-Club/belote-bot/app/modules/session/infrastructure/repositories"
	"github.com/google/uuid"
)

// TeamRequest describes a team at session creation.
type TeamRequest struct {
	Name    string    `json:"name"`
	Players [2]string `json:"players"`
}

func (t TeamRequest) team() (scoringdomain.Team, error) {
	p1, p2 := strings.TrimSpace(t.Players[0]), strings.TrimSpace(t.Players[1])
	name := strings.TrimSpace(t.Name)
	switch {
	case name != "":
		return scoringdomain.Team{Name: name, Players: [2]string{p1, p2}}, nil
	case p1 != "" && p2 != "":
		return scoringdomain.NewTeam(p1, p2), nil
	}
	return scoringdomain.Team{}, ErrInvalidTeam
}

// CreateSessionRequest starts a new match. A zero threshold means 2000.
type CreateSessionRequest struct {
	TeamA            TeamRequest `json:"team_a"`
	TeamB            TeamRequest `json:"team_b"`
	VictoryThreshold int         `json:"victory_threshold"`
	Dealer           int         `json:"dealer"`
}

// RoundView is a scored round with the alert of each half.
type RoundView struct {
	scoringdomain.RoundRecord
	AlertA scoringdomain.Alert `json:"alert_a,omitempty"`
	AlertB scoringdomain.Alert `json:"alert_b,omitempty"`
}

func newRoundView(record scoringdomain.RoundRecord) RoundView {
	return RoundView{
		RoundRecord: record,
		AlertA:      scoringdomain.ClassifyRowAlert(record, scoringdomain.SideA),
		AlertB:      scoringdomain.ClassifyRowAlert(record, scoringdomain.SideB),
	}
}

// SessionSnapshot is the read model of a session.
type SessionSnapshot struct {
	ID               uuid.UUID          `json:"id"`
	TeamA            scoringdomain.Team `json:"team_a"`
	TeamB            scoringdomain.Team `json:"team_b"`
	VictoryThreshold int                `json:"victory_threshold"`
	Dealer           int                `json:"dealer"`
	Cutter           int                `json:"cutter"`
	Opener           int                `json:"opener"`
	Rounds           []RoundView        `json:"rounds"`
	TotalA           int                `json:"total_a"`
	TotalB           int                `json:"total_b"`
	Finished         bool               `json:"finished"`
	Winner           scoringdomain.Side `json:"winner,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	State scoringdomain.MatchState `json:"-"`
}

func newSnapshot(row *sessiondb.GameSession) *SessionSnapshot {
	state := row.State()
	rounds := make([]RoundView, 0, len(state.Rounds))
	for _, r := range state.Rounds {
		rounds = append(rounds, newRoundView(r))
	}
	totalA, totalB := state.Totals()
	return &SessionSnapshot{
		ID:               row.SessionID,
		TeamA:            state.TeamA,
		TeamB:            state.TeamB,
		VictoryThreshold: state.VictoryThreshold,
		Dealer:           state.Dealer,
		Cutter:           scoringdomain.Cutter(state.Dealer),
		Opener:           scoringdomain.Opener(state.Dealer),
		Rounds:           rounds,
		TotalA:           totalA,
		TotalB:           totalB,
		Finished:         state.IsFinished(),
		Winner:           state.Winner(),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		State:            state,
	}
}

// RoundResult is returned by the operations that append a round.
type RoundResult struct {
	Session *SessionSnapshot          `json:"session"`
	Round   RoundView                 `json:"round"`
	Flash   *sessionevents.FlashAlert `json:"flash,omitempty"`
}

// OutcomeView is the bonus/malus preview of a session.
type OutcomeView struct {
	SessionID  uuid.UUID                `json:"session_id"`
	Finished   bool                     `json:"finished"`
	Winner     scoringdomain.Side       `json:"winner,omitempty"`
	BonusMalus scoringdomain.BonusMalus `json:"bonus_malus"`
	Breakdown  string                   `json:"breakdown"`
}

// SessionSummary is one line of the history list.
type SessionSummary struct {
	ID        uuid.UUID          `json:"id"`
	TeamA     string             `json:"team_a"`
	TeamB     string             `json:"team_b"`
	TotalA    int                `json:"total_a"`
	TotalB    int                `json:"total_b"`
	Rounds    int                `json:"rounds"`
	Finished  bool               `json:"finished"`
	Winner    scoringdomain.Side `json:"winner,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func newSummary(row sessiondb.GameSession) SessionSummary {
	return SessionSummary{
		ID:        row.SessionID,
		TeamA:     row.TeamAName,
		TeamB:     row.TeamBName,
		TotalA:    row.TeamATotal,
		TotalB:    row.TeamBTotal,
		Rounds:    len(row.Rounds),
		Finished:  row.IsFinished,
		Winner:    scoringdomain.Side(row.Winner),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func flashAlert(state scoringdomain.MatchState, record scoringdomain.RoundRecord) *sessionevents.FlashAlert {
	alert, side, ok := scoringdomain.DetectFlashAlert(record, state.TeamA.Name, state.TeamB.Name)
	if !ok {
		return nil
	}
	return &sessionevents.FlashAlert{
		Alert:      alert,
		Side:       side,
		Team:       state.TeamName(side),
		Message:    alert.Display(),
		DurationMs: scoringdomain.FlashDuration.Milliseconds(),
	}
}
