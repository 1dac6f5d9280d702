package scoringdomain

import "github.com/brianvoe/gofakeit/v7"

var doublingRemarks = []Remark{RemarkNone, RemarkDouble, RemarkRedouble}

// randomRound draws a structurally valid round: at most one taker, distinct
// remarks and belote within the cap.
func randomRound(f *gofakeit.Faker) (RoundInput, RoundInput) {
	contracts := Contracts()[1:]
	var a, b RoundInput

	taker := &a
	if f.Bool() {
		taker = &b
	}
	if f.Number(0, 9) > 0 {
		taker.Contract = contracts[f.Number(0, len(contracts)-1)]
	}
	taker.Achieved = f.Number(0, 16) * 10
	if taker.Achieved == FullHand {
		switch f.Number(0, 2) {
		case 1:
			taker.Label = LabelCapot
		case 2:
			taker.Label = LabelGenerale
		}
	}

	a.Remark = doublingRemarks[f.Number(0, 2)]
	b.Remark = doublingRemarks[f.Number(0, 2)]
	if a.Remark == b.Remark {
		b.Remark = RemarkNone
	}

	if f.Bool() {
		a.Belote = 20
	} else if f.Bool() {
		b.Belote = 20
	}
	return a, b
}

func mustMatch(a, b Team, threshold, dealer int) MatchState {
	m, err := NewMatch(a, b, threshold, dealer)
	if err != nil {
		panic(err)
	}
	return m
}

func testTeams() (Team, Team) {
	return NewTeam("alice", "bob"), NewTeam("carol", "dave")
}
