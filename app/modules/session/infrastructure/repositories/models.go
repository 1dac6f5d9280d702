package sessiondb

import (
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GameSession is the stored form of a match.
type GameSession struct {
	bun.BaseModel `bun:"table:game_sessions,alias:gs"`

	SessionID        uuid.UUID                   `bun:"session_id,pk,type:uuid" json:"session_id"`
	TeamAName        string                      `bun:"team_a_name,notnull" json:"team_a_name"`
	TeamBName        string                      `bun:"team_b_name,notnull" json:"team_b_name"`
	TeamAPlayers     []string                    `bun:"team_a_players,array" json:"team_a_players"`
	TeamBPlayers     []string                    `bun:"team_b_players,array" json:"team_b_players"`
	Dealer           int                         `bun:"dealer,notnull" json:"dealer"`
	VictoryThreshold int                         `bun:"victory_threshold,notnull" json:"victory_threshold"`
	Rounds           []scoringdomain.RoundRecord `bun:"rounds,type:jsonb,notnull" json:"rounds"`
	TeamATotal       int                         `bun:"team_a_total,notnull" json:"team_a_total"`
	TeamBTotal       int                         `bun:"team_b_total,notnull" json:"team_b_total"`
	IsFinished       bool                        `bun:"is_finished,notnull" json:"is_finished"`
	Winner           string                      `bun:"winner,nullzero" json:"winner,omitempty"`
	CreatedAt        time.Time                   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time                   `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// State rebuilds the in-memory match.
func (s *GameSession) State() scoringdomain.MatchState {
	return scoringdomain.MatchState{
		TeamA:            teamFromColumns(s.TeamAName, s.TeamAPlayers),
		TeamB:            teamFromColumns(s.TeamBName, s.TeamBPlayers),
		VictoryThreshold: s.VictoryThreshold,
		Dealer:           s.Dealer,
		Rounds:           s.Rounds,
	}
}

// Apply copies m into the row, including the derived totals and winner.
func (s *GameSession) Apply(m scoringdomain.MatchState) {
	s.TeamAName = m.TeamA.Name
	s.TeamBName = m.TeamB.Name
	s.TeamAPlayers = playerColumn(m.TeamA)
	s.TeamBPlayers = playerColumn(m.TeamB)
	s.Dealer = m.Dealer
	s.VictoryThreshold = m.VictoryThreshold
	s.Rounds = m.Rounds
	if s.Rounds == nil {
		s.Rounds = []scoringdomain.RoundRecord{}
	}
	s.TeamATotal, s.TeamBTotal = m.Totals()
	s.IsFinished = m.IsFinished()
	s.Winner = string(m.Winner())
}

func playerColumn(t scoringdomain.Team) []string {
	out := []string{}
	for _, p := range t.Players {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func teamFromColumns(name string, players []string) scoringdomain.Team {
	t := scoringdomain.Team{Name: name}
	for i := 0; i < len(players) && i < len(t.Players); i++ {
		t.Players[i] = players[i]
	}
	return t
}
