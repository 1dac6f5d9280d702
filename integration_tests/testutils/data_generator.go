//go:build integration

package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
)

// TestDataGenerator creates test data for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator with an optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s))}
}

// PlayerNames returns n distinct first names.
func (g *TestDataGenerator) PlayerNames(n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := g.faker.FirstName()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// SessionRequest returns a request for two teams of random players.
func (g *TestDataGenerator) SessionRequest(threshold int) sessionservice.CreateSessionRequest {
	names := g.PlayerNames(4)
	return sessionservice.CreateSessionRequest{
		TeamA:            sessionservice.TeamRequest{Players: [2]string{names[0], names[1]}},
		TeamB:            sessionservice.TeamRequest{Players: [2]string{names[2], names[3]}},
		VictoryThreshold: threshold,
		Dealer:           g.faker.Number(0, 3),
	}
}

// PointRound returns a made point contract for the taker and an empty
// defender half.
func (g *TestDataGenerator) PointRound() (taker, defender scoringdomain.RoundInput) {
	contract := scoringdomain.Contract(g.faker.Number(8, 12) * 10)
	return scoringdomain.RoundInput{Contract: contract, Achieved: int(contract) + 10}, scoringdomain.RoundInput{}
}

// CapotRound returns a made capot, worth 500 to the taker.
func CapotRound() (taker, defender scoringdomain.RoundInput) {
	return scoringdomain.RoundInput{
		Contract: scoringdomain.Capot,
		Achieved: scoringdomain.FullHand,
		Label:    scoringdomain.LabelCapot,
	}, scoringdomain.RoundInput{}
}
