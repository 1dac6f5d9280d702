package leaderboarddb

import (
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TeamStat is the running record of a team across matches.
type TeamStat struct {
	bun.BaseModel `bun:"table:team_stats,alias:ts"`

	Name        string    `bun:"name,pk"`
	Victories   int       `bun:"victories,notnull,default:0"`
	GamesPlayed int       `bun:"games_played,notnull,default:0"`
	Points      int       `bun:"points,notnull,default:0"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (t TeamStat) Entry() leaderboarddomain.Entry {
	return leaderboarddomain.Entry{
		Name:        t.Name,
		Victories:   t.Victories,
		GamesPlayed: t.GamesPlayed,
		Points:      t.Points,
	}
}

// PlayerStat is the running record of a player. TeamName is the last team
// the player was recorded with.
type PlayerStat struct {
	bun.BaseModel `bun:"table:player_stats,alias:ps"`

	Name        string    `bun:"name,pk"`
	TeamName    string    `bun:"team_name,notnull,default:''"`
	Victories   int       `bun:"victories,notnull,default:0"`
	GamesPlayed int       `bun:"games_played,notnull,default:0"`
	Points      int       `bun:"points,notnull,default:0"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (p PlayerStat) Entry() leaderboarddomain.Entry {
	return leaderboarddomain.Entry{
		Name:        p.Name,
		Team:        p.TeamName,
		Victories:   p.Victories,
		GamesPlayed: p.GamesPlayed,
		Points:      p.Points,
	}
}

// RecordedMatch marks a session whose result has been credited.
type RecordedMatch struct {
	bun.BaseModel `bun:"table:recorded_matches,alias:rm"`

	SessionID  uuid.UUID `bun:"session_id,pk,type:uuid"`
	RecordedAt time.Time `bun:"recorded_at,notnull,default:current_timestamp"`
}

// victoriesOf is the victory increment o carries.
func victoriesOf(o leaderboarddomain.Outcome) int {
	if o.Won {
		return 1
	}
	return 0
}
