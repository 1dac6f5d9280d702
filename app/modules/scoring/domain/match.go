package scoringdomain

import (
	"slices"
	"strings"
)

// DefaultVictoryThreshold is the target score of a new match.
const DefaultVictoryThreshold = 2000

// VictoryThresholds lists the targets a match can be played to.
var VictoryThresholds = []int{1000, 2000, 3000}

// Team is a pair of players. Name defaults to "player1/player2".
type Team struct {
	Name    string    `json:"name"`
	Players [2]string `json:"players"`
}

// NewTeam builds a team from its two players.
func NewTeam(player1, player2 string) Team {
	return Team{
		Name:    player1 + "/" + player2,
		Players: [2]string{player1, player2},
	}
}

// Members returns the non-empty player names, falling back to splitting Name on "/".
func (t Team) Members() []string {
	var out []string
	for _, p := range t.Players {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, p := range strings.Split(t.Name, "/") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchState is the whole state of a match. Transitions never modify their
// argument; they return a new state whose Rounds slice is not shared.
type MatchState struct {
	TeamA            Team          `json:"team_a"`
	TeamB            Team          `json:"team_b"`
	VictoryThreshold int           `json:"victory_threshold"`
	Dealer           int           `json:"dealer"`
	Rounds           []RoundRecord `json:"rounds"`
}

// NewMatch starts an empty match.
func NewMatch(teamA, teamB Team, threshold, dealer int) (MatchState, error) {
	if !slices.Contains(VictoryThresholds, threshold) {
		return MatchState{}, ErrInvalidThreshold
	}
	if !validSeat(dealer) {
		return MatchState{}, ErrInvalidDealer
	}
	return MatchState{
		TeamA:            teamA,
		TeamB:            teamB,
		VictoryThreshold: threshold,
		Dealer:           dealer,
	}, nil
}

// Totals returns the running totals after the last round.
func (m MatchState) Totals() (int, int) {
	last := lastRow(m.Rounds)
	return last.TeamA.Total, last.TeamB.Total
}

// IsFinished reports whether either team reached the victory threshold.
func (m MatchState) IsFinished() bool {
	a, b := m.Totals()
	return a >= m.VictoryThreshold || b >= m.VictoryThreshold
}

// Winner returns the leading side of a finished match, or SideNone.
func (m MatchState) Winner() Side {
	if !m.IsFinished() {
		return SideNone
	}
	a, b := m.Totals()
	switch {
	case a > b:
		return SideA
	case b > a:
		return SideB
	}
	return SideNone
}

// TeamName returns the display name of side.
func (m MatchState) TeamName(side Side) string {
	if side == SideB {
		return m.TeamB.Name
	}
	return m.TeamA.Name
}

// Outcome evaluates bonus and malus against the current totals.
func (m MatchState) Outcome() BonusMalus {
	a, b := m.Totals()
	return EvaluateBonusMalus(m.Rounds, a, b)
}

func (m MatchState) withRound(record RoundRecord, dealer int) MatchState {
	next := m
	next.Rounds = append(slices.Clone(m.Rounds), record)
	next.Dealer = dealer
	return next
}

// AddRound validates and scores a round, then hands the deal to the next seat.
func AddRound(m MatchState, a, b RoundInput) (MatchState, RoundRecord, error) {
	if m.IsFinished() {
		return m, RoundRecord{}, ErrMatchFinished
	}
	if err := ValidateRound(a, b); err != nil {
		return m, RoundRecord{}, err
	}

	a, b = normalizeRound(a, b)
	record := BuildRow(m.Rounds, len(m.Rounds)+1, m.Dealer, a, b)
	record = annotateSweep(record)

	return m.withRound(record, NextDealer(m.Dealer)), record, nil
}

// UndoLastRound drops the last round and gives the deal back.
func UndoLastRound(m MatchState) (MatchState, RoundRecord, error) {
	if len(m.Rounds) == 0 {
		return m, RoundRecord{}, ErrNoRounds
	}
	removed := m.Rounds[len(m.Rounds)-1]
	next := m
	next.Rounds = slices.Clone(m.Rounds[:len(m.Rounds)-1])
	next.Dealer = PreviousDealer(m.Dealer)
	return next, removed, nil
}

// RecordMisdeal awards a full hand to beneficiary and passes the deal.
// Gaps carry forward untouched.
func RecordMisdeal(m MatchState, beneficiary Side) (MatchState, RoundRecord, error) {
	if beneficiary != SideA && beneficiary != SideB {
		return m, RoundRecord{}, ErrInvalidSide
	}
	if m.IsFinished() {
		return m, RoundRecord{}, ErrMatchFinished
	}

	prev := lastRow(m.Rounds)
	benefit := carryRow(prev.Team(beneficiary))
	benefit.Achieved = FullHand
	benefit.Points = FullHand
	benefit.Total += FullHand
	benefit.Remark = RemarkMisdealBenefit

	offender := carryRow(prev.Team(beneficiary.Other()))
	offender.Remark = RemarkMisdeal

	record := RoundRecord{Number: len(m.Rounds) + 1, Dealer: m.Dealer}
	if beneficiary == SideA {
		record.TeamA, record.TeamB = benefit, offender
	} else {
		record.TeamA, record.TeamB = offender, benefit
	}

	return m.withRound(record, NextDealer(m.Dealer)), record, nil
}

// SkipTurn passes the deal without scoring.
func SkipTurn(m MatchState) (MatchState, error) {
	if m.IsFinished() {
		return m, ErrMatchFinished
	}
	next := m
	next.Rounds = slices.Clone(m.Rounds)
	next.Dealer = NextDealer(m.Dealer)
	return next, nil
}

func carryRow(prev TeamRow) TeamRow {
	return TeamRow{
		TheoreticalGap:    prev.TheoreticalGap,
		TheoreticalPoints: prev.TheoreticalPoints,
		Total:             prev.Total,
	}
}

// normalizeRound derives the defenders' achieved points from the taker's.
func normalizeRound(a, b RoundInput) (RoundInput, RoundInput) {
	switch {
	case a.Takes():
		a, b = normalizePair(a, b)
	case b.Takes():
		b, a = normalizePair(b, a)
	}
	return a, b
}

func normalizePair(taker, defender RoundInput) (RoundInput, RoundInput) {
	if taker.Contract.IsBonus() && taker.Achieved == FullHand {
		// A swept bonus always carries its own label, whatever was selected.
		taker.Label = bonusLabel(taker.Contract)
		defender.Achieved = 0
		return taker, defender
	}

	switch {
	case defender.Label == LabelNotCapot:
		defender.Achieved = 0
	case taker.Label == LabelNotCapot:
	default:
		defender.Achieved = FullHand - taker.Achieved
	}
	return taker, defender
}

func bonusLabel(c Contract) AchievedLabel {
	if c == Generale {
		return LabelGenerale
	}
	return LabelCapot
}

// annotateSweep replaces the taker's remark when it swept the deal on a
// point contract. A capot or generale label marks the sweep as unannounced.
func annotateSweep(record RoundRecord) RoundRecord {
	taker := record.Taker()
	if taker == SideNone || !sweptUnannounced(record, taker) {
		return record
	}

	remark := RemarkWorthless
	if row := record.Team(taker); row.Label == LabelCapot || row.Label == LabelGenerale {
		remark = RemarkUnannouncedCapot
	}
	if taker == SideA {
		record.TeamA.Remark = remark
	} else {
		record.TeamB.Remark = remark
	}
	return record
}
