package leaderboarddomain

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
)

var (
	// ErrSamePlayer is returned when a player is merged into itself.
	ErrSamePlayer = errors.New("cannot merge a player into itself")

	// ErrEmptyName is returned when a merge names no player.
	ErrEmptyName = errors.New("player name is required")
)

// Entry is one line of the team or player standings.
type Entry struct {
	Name        string `json:"name"`
	Team        string `json:"team,omitempty"`
	Victories   int    `json:"victories"`
	GamesPlayed int    `json:"games_played"`
	Points      int    `json:"points"`
}

// Outcome is what a finished match credits to one team.
type Outcome struct {
	Team    string
	Players []string
	Won     bool
	Points  int
}

// MatchOutcomes splits a match result into one outcome per team. On a tie
// nobody is credited a victory; both teams still get their games and points.
func MatchOutcomes(teamA, teamB scoringdomain.Team, result scoringdomain.BonusMalus) []Outcome {
	return []Outcome{
		{
			Team:    teamA.Name,
			Players: playersOf(teamA),
			Won:     result.Winner == scoringdomain.SideA,
			Points:  result.TeamA.Final,
		},
		{
			Team:    teamB.Name,
			Players: playersOf(teamB),
			Won:     result.Winner == scoringdomain.SideB,
			Points:  result.TeamB.Final,
		},
	}
}

// playersOf lists the players of t, dropping the team name when the team was
// created without players.
func playersOf(t scoringdomain.Team) []string {
	members := t.Members()
	if len(members) == 1 && strings.EqualFold(members[0], strings.TrimSpace(t.Name)) {
		return nil
	}
	return members
}

// Apply credits o to e.
func (e Entry) Apply(o Outcome) Entry {
	e.GamesPlayed++
	e.Points += o.Points
	if o.Won {
		e.Victories++
	}
	return e
}

// Merge folds source into target and keeps target's name and team.
func Merge(source, target Entry) (Entry, error) {
	if strings.TrimSpace(source.Name) == "" || strings.TrimSpace(target.Name) == "" {
		return Entry{}, ErrEmptyName
	}
	if source.Name == target.Name {
		return Entry{}, ErrSamePlayer
	}
	target.Victories += source.Victories
	target.GamesPlayed += source.GamesPlayed
	target.Points += source.Points
	return target, nil
}

// Compare orders entries by points, then victories, both descending, then by name.
func Compare(a, b Entry) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Victories, a.Victories); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Sort orders entries in standings order.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, Compare)
}

// Ranked is an entry with its position. Entries with equal points and
// victories share a position.
type Ranked struct {
	Rank int `json:"rank"`
	Entry
}

// Rank sorts entries and assigns standard competition ranks (1, 2, 2, 4).
func Rank(entries []Entry) []Ranked {
	sorted := slices.Clone(entries)
	Sort(sorted)

	out := make([]Ranked, len(sorted))
	for i, e := range sorted {
		rank := i + 1
		if i > 0 {
			prev := sorted[i-1]
			if prev.Points == e.Points && prev.Victories == e.Victories {
				rank = out[i-1].Rank
			}
		}
		out[i] = Ranked{Rank: rank, Entry: e}
	}
	return out
}
