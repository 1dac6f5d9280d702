package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/domain"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
)

// FakeService is a programmable stand-in for leaderboardservice.Service.
type FakeService struct {
	RecordMatchFunc  func(ctx context.Context, match sessionevents.MatchFinishedPayload) (bool, error)
	StandingsFunc    func(ctx context.Context) (*leaderboardservice.Standings, error)
	MergePlayersFunc func(ctx context.Context, source, target string) (*leaderboarddomain.Entry, error)
	ResetFunc        func(ctx context.Context) error
}

var _ leaderboardservice.Service = (*FakeService)(nil)

func (f *FakeService) RecordMatch(ctx context.Context, match sessionevents.MatchFinishedPayload) (bool, error) {
	if f.RecordMatchFunc != nil {
		return f.RecordMatchFunc(ctx, match)
	}
	return true, nil
}

func (f *FakeService) Standings(ctx context.Context) (*leaderboardservice.Standings, error) {
	if f.StandingsFunc != nil {
		return f.StandingsFunc(ctx)
	}
	return &leaderboardservice.Standings{}, nil
}

func (f *FakeService) MergePlayers(ctx context.Context, source, target string) (*leaderboarddomain.Entry, error) {
	if f.MergePlayersFunc != nil {
		return f.MergePlayersFunc(ctx, source, target)
	}
	return &leaderboarddomain.Entry{Name: target}, nil
}

func (f *FakeService) Reset(ctx context.Context) error {
	if f.ResetFunc != nil {
		return f.ResetFunc(ctx)
	}
	return nil
}
