package scoringdomain

// TeamRow is one team's half of a scored round.
type TeamRow struct {
	Contract Contract      `json:"contract"`
	Suit     Suit          `json:"suit,omitempty"`
	Achieved int           `json:"achieved"`
	Label    AchievedLabel `json:"label,omitempty"`
	Belote   int           `json:"belote"`
	Remark   Remark        `json:"remark,omitempty"`

	Failed            bool `json:"failed"`
	Gap               int  `json:"gap"`
	TheoreticalGap    int  `json:"theoretical_gap"`
	TheoreticalPoints int  `json:"theoretical_points"`
	Points            int  `json:"points"`
	Total             int  `json:"total"`
}

// Input returns the declaration the row was scored from.
func (r TeamRow) Input() RoundInput {
	return RoundInput{
		Contract: r.Contract,
		Suit:     r.Suit,
		Achieved: r.Achieved,
		Label:    r.Label,
		Belote:   r.Belote,
		Remark:   r.Remark,
	}
}

// RoundRecord is an appended, never-mutated entry of a match history.
type RoundRecord struct {
	Number int     `json:"number"`
	Dealer int     `json:"dealer"`
	TeamA  TeamRow `json:"team_a"`
	TeamB  TeamRow `json:"team_b"`
}

// Team returns the row of the given side.
func (r RoundRecord) Team(side Side) TeamRow {
	if side == SideB {
		return r.TeamB
	}
	return r.TeamA
}

// Taker returns the side holding the contract, or SideNone.
func (r RoundRecord) Taker() Side {
	switch {
	case r.TeamA.Contract > NoContract:
		return SideA
	case r.TeamB.Contract > NoContract:
		return SideB
	}
	return SideNone
}

// lastRow returns the most recent record, or the zero record for an empty history.
func lastRow(history []RoundRecord) RoundRecord {
	if len(history) == 0 {
		return RoundRecord{}
	}
	return history[len(history)-1]
}

// BuildRow scores a round against the history that precedes it.
func BuildRow(history []RoundRecord, number, dealer int, a, b RoundInput) RoundRecord {
	prev := lastRow(history)
	pointsA, failedA, pointsB, failedB := AllocateRound(a, b)

	return RoundRecord{
		Number: number,
		Dealer: dealer,
		TeamA:  buildTeamRow(prev.TeamA, a, pointsA, failedA),
		TeamB:  buildTeamRow(prev.TeamB, b, pointsB, failedB),
	}
}

func buildTeamRow(prev TeamRow, in RoundInput, points int, failed bool) TeamRow {
	gap := ComputeGap(in.Contract, in.Achieved, failed, in.Label)
	return TeamRow{
		Contract:          in.Contract,
		Suit:              in.Suit,
		Achieved:          in.Achieved,
		Label:             in.Label,
		Belote:            in.Belote,
		Remark:            in.Remark,
		Failed:            failed,
		Gap:               gap,
		TheoreticalGap:    prev.TheoreticalGap + gap,
		TheoreticalPoints: prev.TheoreticalPoints + TheoreticalPoints(in.Contract, in.Achieved, in.Belote, in.Label),
		Points:            points,
		Total:             prev.Total + points,
	}
}
