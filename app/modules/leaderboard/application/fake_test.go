package leaderboardservice

import (
	"context"
	"sync"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/domain"
	leaderboarddb "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeLeaderboardRepo keeps statistics in maps and records the calls it receives.
type FakeLeaderboardRepo struct {
	mu       sync.Mutex
	trace    []string
	recorded map[uuid.UUID]bool
	teams    map[string]*leaderboarddb.TeamStat
	players  map[string]*leaderboarddb.PlayerStat

	ApplyOutcomeFunc func(ctx context.Context, db bun.IDB, outcome leaderboarddomain.Outcome, at time.Time) error
}

var _ leaderboarddb.Repository = (*FakeLeaderboardRepo)(nil)

func NewFakeLeaderboardRepo() *FakeLeaderboardRepo {
	return &FakeLeaderboardRepo{
		recorded: make(map[uuid.UUID]bool),
		teams:    make(map[string]*leaderboarddb.TeamStat),
		players:  make(map[string]*leaderboarddb.PlayerStat),
	}
}

func (f *FakeLeaderboardRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLeaderboardRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeLeaderboardRepo) MarkRecorded(ctx context.Context, db bun.IDB, sessionID uuid.UUID, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("MarkRecorded")
	if f.recorded[sessionID] {
		return false, nil
	}
	f.recorded[sessionID] = true
	return true, nil
}

func (f *FakeLeaderboardRepo) ApplyOutcome(ctx context.Context, db bun.IDB, outcome leaderboarddomain.Outcome, at time.Time) error {
	if f.ApplyOutcomeFunc != nil {
		return f.ApplyOutcomeFunc(ctx, db, outcome, at)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ApplyOutcome")

	team, ok := f.teams[outcome.Team]
	if !ok {
		team = &leaderboarddb.TeamStat{Name: outcome.Team}
		f.teams[outcome.Team] = team
	}
	e := team.Entry().Apply(outcome)
	team.Victories, team.GamesPlayed, team.Points = e.Victories, e.GamesPlayed, e.Points

	for _, name := range outcome.Players {
		player, ok := f.players[name]
		if !ok {
			player = &leaderboarddb.PlayerStat{Name: name}
			f.players[name] = player
		}
		e := player.Entry().Apply(outcome)
		player.TeamName = outcome.Team
		player.Victories, player.GamesPlayed, player.Points = e.Victories, e.GamesPlayed, e.Points
	}
	return nil
}

func (f *FakeLeaderboardRepo) TeamStandings(ctx context.Context, db bun.IDB) ([]leaderboarddb.TeamStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("TeamStandings")
	out := make([]leaderboarddb.TeamStat, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (f *FakeLeaderboardRepo) PlayerStandings(ctx context.Context, db bun.IDB) ([]leaderboarddb.PlayerStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PlayerStandings")
	out := make([]leaderboarddb.PlayerStat, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, *p)
	}
	return out, nil
}

func (f *FakeLeaderboardRepo) GetPlayer(ctx context.Context, db bun.IDB, name string) (*leaderboarddb.PlayerStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetPlayer")
	p, ok := f.players[name]
	if !ok {
		return nil, leaderboarddb.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeLeaderboardRepo) SavePlayer(ctx context.Context, db bun.IDB, player *leaderboarddb.PlayerStat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SavePlayer")
	cp := *player
	f.players[player.Name] = &cp
	return nil
}

func (f *FakeLeaderboardRepo) DeletePlayer(ctx context.Context, db bun.IDB, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeletePlayer")
	if _, ok := f.players[name]; !ok {
		return leaderboarddb.ErrNotFound
	}
	delete(f.players, name)
	return nil
}

func (f *FakeLeaderboardRepo) Reset(ctx context.Context, db bun.IDB) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Reset")
	f.recorded = make(map[uuid.UUID]bool)
	f.teams = make(map[string]*leaderboarddb.TeamStat)
	f.players = make(map[string]*leaderboarddb.PlayerStat)
	return nil
}
